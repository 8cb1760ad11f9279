package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "scootershare/internal/errors"
	"scootershare/internal/repository"
)

func newCustomerService() (*CustomerService, *repository.Store) {
	store := repository.NewSeededMemoryStore()
	return NewCustomerService(store), store
}

func TestCustomerSearch(t *testing.T) {
	svc, _ := newCustomerService()

	all, err := svc.List("")
	require.NoError(t, err)
	assert.Len(t, all, 5)

	out, err := svc.List("jane")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "C002", out[0].ID)
}

func TestCustomerCreateAndUpdate(t *testing.T) {
	svc, _ := newCustomerService()

	created, err := svc.Create(CustomerRequest{
		FirstName: "Ana", LastName: "Lima",
		Email: "ana.lima@email.com", Phone: "+15550199",
	}, "2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, "C006", created.ID)
	assert.Equal(t, "2025-06-01", created.RegisteredDate)
	assert.Equal(t, 0.0, created.Balance)

	updated, err := svc.Update(created.ID, CustomerRequest{
		FirstName: "Ana", LastName: "Souza",
		Email: "ana.souza@email.com", Phone: "+15550199",
	})
	require.NoError(t, err)
	assert.Equal(t, "Souza", updated.LastName)
	// balance survives a profile edit
	assert.Equal(t, 0.0, updated.Balance)
}

func TestCustomerCreateValidation(t *testing.T) {
	svc, _ := newCustomerService()

	_, err := svc.Create(CustomerRequest{LastName: "Lima", Email: "a@b.com"}, "2025-06-01")
	assert.True(t, errs.Is(err, errs.KindValidation))

	_, err = svc.Create(CustomerRequest{FirstName: "Ana", LastName: "Lima", Email: "nope"}, "2025-06-01")
	assert.True(t, errs.Is(err, errs.KindValidation))
}

func TestCustomerDeleteBlockedByBookings(t *testing.T) {
	svc, _ := newCustomerService()

	// C001 holds the seeded bookings
	err := svc.Delete("C001")
	assert.True(t, errs.Is(err, errs.KindConflict))

	// C002 has none
	assert.NoError(t, svc.Delete("C002"))
	_, err = svc.Get("C002")
	assert.True(t, errs.Is(err, errs.KindNotFound))
}

func TestTopUp(t *testing.T) {
	svc, _ := newCustomerService()

	customer, err := svc.TopUp("C001", 10)
	require.NoError(t, err)
	assert.InDelta(t, 35.50, customer.Balance, 1e-9)

	_, err = svc.TopUp("C001", 0)
	assert.True(t, errs.Is(err, errs.KindValidation))
	_, err = svc.TopUp("C001", -5)
	assert.True(t, errs.Is(err, errs.KindValidation))
	_, err = svc.TopUp("C999", 10)
	assert.True(t, errs.Is(err, errs.KindNotFound))
}
