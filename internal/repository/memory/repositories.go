package memory

// Repositories bundles one repository per entity. Each owns its own store
// and lock; nothing here spans more than one store atomically.
type Repositories struct {
	Products         *ProductRepository
	SupplierInvoices *SupplierInvoiceRepository
	Expenses         *ExpenseRepository
	Appointments     *AppointmentRepository
	Shifts           *ShiftRepository
	Meetings         *MeetingRepository
	Notifications    *NotificationRepository
	Patients         *PatientRepository
	Sessions         *SessionRepository
	Assessments      *AssessmentRepository
	TherapyPlans     *TherapyPlanRepository
	Documents        *DocumentRepository
	PhoneLogs        *PhoneLogRepository
	Payments         *PaymentRepository
	Invoices         *InvoiceRepository
	Budgets          *BudgetRepository
	Users            *UserRepository
}

func New(opts Options) *Repositories {
	return &Repositories{
		Products:         NewProductRepository(opts),
		SupplierInvoices: NewSupplierInvoiceRepository(opts),
		Expenses:         NewExpenseRepository(opts),
		Appointments:     NewAppointmentRepository(opts),
		Shifts:           NewShiftRepository(opts),
		Meetings:         NewMeetingRepository(opts),
		Notifications:    NewNotificationRepository(opts),
		Patients:         NewPatientRepository(opts),
		Sessions:         NewSessionRepository(opts),
		Assessments:      NewAssessmentRepository(opts),
		TherapyPlans:     NewTherapyPlanRepository(opts),
		Documents:        NewDocumentRepository(opts),
		PhoneLogs:        NewPhoneLogRepository(opts),
		Payments:         NewPaymentRepository(opts),
		Invoices:         NewInvoiceRepository(opts),
		Budgets:          NewBudgetRepository(opts),
		Users:            NewUserRepository(),
	}
}

// Counts reports the number of records per store, keyed by resource name.
func (r *Repositories) Counts() map[string]int {
	return map[string]int{
		"products":          r.Products.Count(),
		"supplier_invoices": r.SupplierInvoices.Count(),
		"expenses":          r.Expenses.Count(),
		"appointments":      r.Appointments.Count(),
		"shifts":            r.Shifts.Count(),
		"meetings":          r.Meetings.Count(),
		"notifications":     r.Notifications.Count(),
		"patients":          r.Patients.Count(),
		"sessions":          r.Sessions.Count(),
		"assessments":       r.Assessments.Count(),
		"therapy_plans":     r.TherapyPlans.Count(),
		"documents":         r.Documents.Count(),
		"phone_logs":        r.PhoneLogs.Count(),
		"payments":          r.Payments.Count(),
		"invoices":          r.Invoices.Count(),
		"budgets":           r.Budgets.Count(),
		"users":             r.Users.s.Len(),
	}
}
