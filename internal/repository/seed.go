package repository

import (
	"time"

	"scootershare/internal/models"
)

// NewSeededMemoryStore builds the in-memory store pre-loaded with the demo
// fleet. Scooters holding a confirmed booking seed as Booked; scooters with
// an open maintenance issue seed in their repair status, which always wins
// over the booking state.
func NewSeededMemoryStore() *Store {
	return &Store{
		Scooters:  NewMemoryScooterRepository(SeedScooters()),
		Bookings:  NewMemoryBookingRepository(SeedBookings(), 1004),
		Usage:     NewMemoryUsageRepository(SeedUsage(), 9),
		Issues:    NewMemoryIssueRepository(SeedIssues(), 6),
		Customers: NewMemoryCustomerRepository(SeedCustomers(), 6),
	}
}

func SeedScooters() []models.Scooter {
	return []models.Scooter{
		{ID: "SC-1001", Make: "Xiaomi Pro 2", Color: "Black", Location: "Central Park", Power: 85, CostPerMinute: 0.25, Status: models.ScooterBooked},
		{ID: "SC-1002", Make: "Segway Ninebot", Color: "White", Location: "Downtown Station", Power: 92, CostPerMinute: 0.30, Status: models.ScooterAvailable},
		{ID: "SC-1003", Make: "Xiaomi Essential", Color: "Gray", Location: "University Campus", Power: 65, CostPerMinute: 0.20, Status: models.ScooterBooked},
		{ID: "SC-1004", Make: "Segway Max", Color: "Black", Location: "Main Street", Power: 78, CostPerMinute: 0.28, Status: models.ScooterToBeRepaired},
		{ID: "SC-1005", Make: "Xiaomi Pro 3", Color: "Blue", Location: "Shopping Mall", Power: 90, CostPerMinute: 0.32, Status: models.ScooterUnderRepair},
	}
}

func SeedBookings() []models.Booking {
	created := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	return []models.Booking{
		{ID: "BK-1001", ScooterID: "SC-1001", CustomerID: "C001", Date: "2025-05-05", StartTime: "14:30", DurationMinutes: 45, Cost: 11.25, Status: models.BookingActive, CreatedAt: created, UpdatedAt: created},
		{ID: "BK-1002", ScooterID: "SC-1003", CustomerID: "C001", Date: "2025-05-06", StartTime: "09:00", DurationMinutes: 30, Cost: 6.00, Status: models.BookingActive, CreatedAt: created, UpdatedAt: created},
		{ID: "BK-1003", ScooterID: "SC-1005", CustomerID: "C001", Date: "2025-05-08", StartTime: "16:15", DurationMinutes: 60, Cost: 19.20, Status: models.BookingActive, CreatedAt: created, UpdatedAt: created},
	}
}

func SeedIssues() []models.MaintenanceIssue {
	resolved := time.Date(2025, 4, 16, 13, 40, 0, 0, time.UTC)
	return []models.MaintenanceIssue{
		{
			ID: "ISSUE-001", ScooterID: "SC-1004", ScooterMake: "Segway Max",
			ReportedBy: "John Doe", ReportedAt: time.Date(2025, 4, 18, 14, 30, 0, 0, time.UTC),
			IssueType: models.IssueMechanical, Priority: models.PriorityHigh,
			Description: "Brakes not working properly, scooter doesn't stop quickly enough.",
			Status:      models.IssuePending,
		},
		{
			ID: "ISSUE-002", ScooterID: "SC-1005", ScooterMake: "Xiaomi Pro 3",
			ReportedBy: "Jane Smith", ReportedAt: time.Date(2025, 4, 17, 9, 15, 0, 0, time.UTC),
			IssueType: models.IssueElectrical, Priority: models.PriorityMedium,
			Description: "Battery drains very quickly, only lasts about 30 minutes of use.",
			Status:      models.IssueInProgress,
		},
		{
			ID: "ISSUE-003", ScooterID: "SC-1008", ScooterMake: "Segway Ninebot",
			ReportedBy: "Mike Johnson", ReportedAt: time.Date(2025, 4, 16, 16, 45, 0, 0, time.UTC),
			IssueType: models.IssueSoftware, Priority: models.PriorityLow,
			Description: "Display shows incorrect battery percentage, jumps from 50% to 10%.",
			Status:      models.IssuePending,
		},
		{
			ID: "ISSUE-004", ScooterID: "SC-1012", ScooterMake: "Xiaomi Essential",
			ReportedBy: "Sarah Williams", ReportedAt: time.Date(2025, 4, 15, 11, 20, 0, 0, time.UTC),
			IssueType: models.IssueCosmetic, Priority: models.PriorityLow,
			Description: "Handlebar grip is torn and coming loose.",
			Status:      models.IssueCompleted,
			Resolution:  "Replaced handlebar grip with new one.",
			ResolvedAt:  &resolved,
		},
		{
			ID: "ISSUE-005", ScooterID: "SC-1007", ScooterMake: "Segway Max",
			ReportedBy: "David Brown", ReportedAt: time.Date(2025, 4, 14, 8, 50, 0, 0, time.UTC),
			IssueType: models.IssueMechanical, Priority: models.PriorityHigh,
			Description: "Folding mechanism is stuck, cannot fold the scooter for transport.",
			Status:      models.IssueInProgress,
		},
	}
}

func SeedCustomers() []models.Customer {
	return []models.Customer{
		{ID: "C001", FirstName: "John", LastName: "Doe", Email: "john.doe@example.com", Phone: "+1 (555) 123-4567", Balance: 25.50, RegisteredDate: "2025-01-15", TotalRides: 12},
		{ID: "C002", FirstName: "Jane", LastName: "Smith", Email: "jane.smith@example.com", Phone: "+1 (555) 987-6543", Balance: 42.75, RegisteredDate: "2025-02-03", TotalRides: 8},
		{ID: "C003", FirstName: "Michael", LastName: "Johnson", Email: "michael.j@example.com", Phone: "+1 (555) 456-7890", Balance: 10.00, RegisteredDate: "2025-02-18", TotalRides: 5},
		{ID: "C004", FirstName: "Sarah", LastName: "Williams", Email: "sarah.w@example.com", Phone: "+1 (555) 789-0123", Balance: 35.25, RegisteredDate: "2025-03-05", TotalRides: 15},
		{ID: "C005", FirstName: "David", LastName: "Brown", Email: "david.b@example.com", Phone: "+1 (555) 234-5678", Balance: 5.50, RegisteredDate: "2025-03-22", TotalRides: 3},
	}
}

func SeedUsage() []models.UsageRecord {
	ride := func(id, customerID, customerName, scooterID, scooterMake, color string, start, end time.Time, from, to string, minutes int, cost float64, power int) models.UsageRecord {
		return models.UsageRecord{
			ID: id, CustomerID: customerID, CustomerName: customerName,
			ScooterID: scooterID, ScooterMake: scooterMake, ScooterColor: color,
			StartTime: start, EndTime: end, StartLocation: from, EndLocation: to,
			DurationMinutes: minutes, Cost: cost, PowerUsed: power,
		}
	}
	return []models.UsageRecord{
		ride("U001", "C001", "John Doe", "SC-1001", "Xiaomi Pro 2", "Black",
			time.Date(2025, 5, 15, 10, 30, 0, 0, time.UTC), time.Date(2025, 5, 15, 11, 15, 0, 0, time.UTC),
			"Central Park", "Downtown Station", 45, 8.75, 15),
		ride("U002", "C002", "Jane Smith", "SC-1042", "Segway Ninebot", "White",
			time.Date(2025, 5, 14, 14, 20, 0, 0, time.UTC), time.Date(2025, 5, 14, 15, 5, 0, 0, time.UTC),
			"University Campus", "Main Street", 45, 7.50, 12),
		ride("U003", "C001", "John Doe", "SC-1015", "Xiaomi Essential", "Gray",
			time.Date(2025, 5, 12, 9, 0, 0, 0, time.UTC), time.Date(2025, 5, 12, 9, 30, 0, 0, time.UTC),
			"Train Station", "Office Park", 30, 5.25, 8),
		ride("U004", "C003", "Michael Johnson", "SC-1003", "Xiaomi Essential", "Gray",
			time.Date(2025, 5, 15, 13, 10, 0, 0, time.UTC), time.Date(2025, 5, 15, 13, 55, 0, 0, time.UTC),
			"Shopping Mall", "University Campus", 45, 6.75, 10),
		ride("U005", "C004", "Sarah Williams", "SC-1002", "Segway Ninebot", "White",
			time.Date(2025, 5, 13, 16, 30, 0, 0, time.UTC), time.Date(2025, 5, 13, 17, 15, 0, 0, time.UTC),
			"Downtown Station", "Central Park", 45, 9.00, 14),
		ride("U006", "C002", "Jane Smith", "SC-1005", "Xiaomi Pro 3", "Blue",
			time.Date(2025, 5, 11, 11, 45, 0, 0, time.UTC), time.Date(2025, 5, 11, 12, 30, 0, 0, time.UTC),
			"Main Street", "Shopping Mall", 45, 8.25, 13),
		ride("U007", "C005", "David Brown", "SC-1004", "Segway Max", "Black",
			time.Date(2025, 5, 10, 8, 15, 0, 0, time.UTC), time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC),
			"Office Park", "Train Station", 45, 7.75, 11),
		ride("U008", "C001", "John Doe", "SC-1001", "Xiaomi Pro 2", "Black",
			time.Date(2025, 5, 9, 17, 30, 0, 0, time.UTC), time.Date(2025, 5, 9, 18, 15, 0, 0, time.UTC),
			"University Campus", "Downtown Station", 45, 8.75, 15),
	}
}
