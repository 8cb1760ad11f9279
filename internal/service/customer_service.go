package service

import (
	"strings"

	log "github.com/sirupsen/logrus"

	"scootershare/internal/catalog"
	errs "scootershare/internal/errors"
	"scootershare/internal/models"
	"scootershare/internal/repository"
)

// CustomerService manages rider accounts and their balances.
type CustomerService struct {
	customers repository.CustomerRepository
	bookings  repository.BookingRepository
	locks     *entityLocks
}

func NewCustomerService(store *repository.Store) *CustomerService {
	return &CustomerService{
		customers: store.Customers,
		bookings:  store.Bookings,
		locks:     newEntityLocks(),
	}
}

// List returns customers, optionally narrowed by a free-text search over
// name, email and id.
func (c *CustomerService) List(query string) ([]models.Customer, error) {
	all, err := c.customers.List()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(query) == "" {
		return all, nil
	}
	return catalog.SearchCustomers(all, query), nil
}

func (c *CustomerService) Get(id string) (*models.Customer, error) {
	return c.customers.Get(id)
}

// CustomerRequest carries the writable fields of a customer profile.
type CustomerRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

func (r CustomerRequest) validate() error {
	if strings.TrimSpace(r.FirstName) == "" || strings.TrimSpace(r.LastName) == "" {
		return errs.Validation("first and last name are required")
	}
	if !strings.Contains(r.Email, "@") {
		return errs.Validation("a valid email is required")
	}
	return nil
}

func (c *CustomerService) Create(req CustomerRequest, registeredDate string) (*models.Customer, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	customer := &models.Customer{
		FirstName:      strings.TrimSpace(req.FirstName),
		LastName:       strings.TrimSpace(req.LastName),
		Email:          strings.TrimSpace(req.Email),
		Phone:          strings.TrimSpace(req.Phone),
		RegisteredDate: registeredDate,
	}
	if err := c.customers.Create(customer); err != nil {
		return nil, err
	}
	log.WithField("customer", customer.ID).Info("customer registered")
	return customer, nil
}

func (c *CustomerService) Update(id string, req CustomerRequest) (*models.Customer, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	unlock := c.locks.lock(id)
	defer unlock()

	customer, err := c.customers.Get(id)
	if err != nil {
		return nil, err
	}
	customer.FirstName = strings.TrimSpace(req.FirstName)
	customer.LastName = strings.TrimSpace(req.LastName)
	customer.Email = strings.TrimSpace(req.Email)
	customer.Phone = strings.TrimSpace(req.Phone)
	if err := c.customers.Update(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// Delete removes a customer. Customers with bookings on file cannot be
// removed.
func (c *CustomerService) Delete(id string) error {
	unlock := c.locks.lock(id)
	defer unlock()

	if _, err := c.customers.Get(id); err != nil {
		return err
	}
	open, err := c.bookings.ListByCustomer(id)
	if err != nil {
		return err
	}
	if len(open) > 0 {
		return errs.Conflict("customer " + id + " still has bookings")
	}
	return c.customers.Delete(id)
}

// TopUp adds funds to the customer's balance. The amount must be positive.
func (c *CustomerService) TopUp(id string, amount float64) (*models.Customer, error) {
	if amount <= 0 {
		return nil, errs.Validation("top-up amount must be positive")
	}
	unlock := c.locks.lock(id)
	defer unlock()

	customer, err := c.customers.Get(id)
	if err != nil {
		return nil, err
	}
	customer.Balance += amount
	if err := c.customers.Update(customer); err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"customer": id, "amount": amount}).Info("balance topped up")
	return customer, nil
}
