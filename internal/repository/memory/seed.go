package memory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain/appointment"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain/clinical"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain/document"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain/expense"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain/finance"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain/inventory"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain/meeting"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain/notification"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain/patient"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain/phonelog"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain/shift"
)

func ptr[T any](v T) *T { return &v }

func tl(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func day(s string) domain.Date { return domain.MustDate(s) }

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

// SeedDemoData loads the demo clinic dataset. Loading twice is harmless:
// records with a known id replace the stored version.
func (r *Repositories) SeedDemoData() {
	r.Products.Seed(
		inventory.Product{
			ID: "prd_001", Name: "Laptop Dell XPS 13", Category: "Elektronik",
			Stock: 15, MinStock: 5, Price: tl(25000), Supplier: "Tech Supplier A",
			LastUpdated: day("2024-01-15"), Description: "13 inç ekran, Intel i7 işlemci, 16GB RAM",
		},
		inventory.Product{
			ID: "prd_002", Name: "Ofis Sandalyesi", Category: "Mobilya",
			Stock: 3, MinStock: 10, Price: tl(1200), Supplier: "Mobilya Ltd",
			LastUpdated: day("2024-01-14"), Description: "Ergonomik tasarım, ayarlanabilir yükseklik",
		},
		inventory.Product{
			ID: "prd_003", Name: "A4 Kağıt Paketi", Category: "Kırtasiye",
			Stock: 0, MinStock: 20, Price: tl(45), Supplier: "Kırtasiye Merkezi",
			LastUpdated: day("2024-01-13"), Description: "500 sayfa, 80gr/m²",
		},
		inventory.Product{
			ID: "prd_004", Name: "Yazıcı HP LaserJet", Category: "Elektronik",
			Stock: 8, MinStock: 3, Price: tl(3500), Supplier: "Tech Supplier B",
			LastUpdated: day("2024-01-12"), Description: "Lazer yazıcı, renkli baskı",
		},
	)

	r.SupplierInvoices.Seed(
		inventory.SupplierInvoice{
			ID: "sinv_001", InvoiceNumber: "INV-2024-001", Supplier: "ABC Tedarik Ltd.",
			Amount: tl(15000), IssueDate: day("2024-01-10"), DueDate: day("2024-01-25"),
			Status: inventory.InvoicePending, Category: "Malzeme", Description: "Ofis malzemeleri tedariki",
		},
		inventory.SupplierInvoice{
			ID: "sinv_002", InvoiceNumber: "INV-2024-002", Supplier: "XYZ Hizmet A.Ş.",
			Amount: tl(3500), IssueDate: day("2024-01-05"), DueDate: day("2024-01-20"),
			Status: inventory.InvoiceOverdue, Category: "Hizmet", Description: "Temizlik hizmeti",
		},
	)

	r.Expenses.Seed(
		expense.Expense{
			ID: "exp_001", Description: "Ofis Kira Ödemesi", Category: "Kira", Amount: tl(8500),
			Date: day("2024-01-15"), Status: expense.StatusApproved, Receipt: true,
			SubmittedBy: "Admin", ApprovedBy: "Manager", Notes: "Aylık kira ödemesi",
		},
		expense.Expense{
			ID: "exp_002", Description: "Elektrik Faturası", Category: "Faturalar", Amount: tl(1250),
			Date: day("2024-01-14"), Status: expense.StatusPending, Receipt: true,
			SubmittedBy: "Muhasebe", Notes: "Aralık ayı elektrik faturası",
		},
	)

	r.Appointments.Seed(appointment.Appointment{
		ID: "apt_001", ClientName: "Ayşe Yılmaz", ClientPhone: "+90 532 123 4567",
		ClientEmail: "ayse.yilmaz@email.com", Service: "Bireysel Terapi", Time: "10:00",
		Date: day("2024-01-15"), Duration: 50, Status: appointment.StatusConfirmed,
		Staff: "Dr. Zeynep Kaya", Notes: "Kontrol seansı", Price: ptr(tl(350)),
	})

	r.Shifts.Seed(
		shift.Shift{
			ID: "shf_001", EmployeeID: "usr_003", EmployeeName: "Elif Sekreter",
			Date: day("2024-01-15"), StartTime: "09:00", EndTime: "17:00",
			Position: "Sekreter", Status: shift.StatusScheduled, BreakTime: 60,
		},
		shift.Shift{
			ID: "shf_002", EmployeeID: "usr_004", EmployeeName: "Merve Asistan",
			Date: day("2024-01-15"), StartTime: "13:00", EndTime: "21:00",
			Position: "Asistan Psikolog", Status: shift.StatusScheduled, BreakTime: 30,
		},
	)

	r.Meetings.Seed(meeting.Meeting{
		ID: "mtg_001", Title: "Haftalık Ekip Toplantısı",
		Description: "Haftalık vaka değerlendirmesi ve hedef belirleme",
		Date:        day("2024-01-16"), Time: "10:00", Duration: 60,
		Attendees: []string{"Dr. Zeynep Kaya", "Merve Asistan", "Elif Sekreter"},
		Location:  "Toplantı Salonu A", Status: meeting.StatusScheduled,
		Agenda: []string{"Geçen hafta vakaları", "Yeni hedefler", "Sorun ve çözümler"},
	})

	r.Notifications.Seed(
		notification.Notification{
			ID: "ntf_001", Title: "Düşük Stok Uyarısı",
			Message: "Ofis Sandalyesi stok seviyesi kritik seviyede (3 adet)",
			Type:    notification.TypeWarning, CreatedAt: ts("2024-01-15T10:30:00Z"), UserID: "usr_001",
		},
		notification.Notification{
			ID: "ntf_002", Title: "Fatura Vade Uyarısı",
			Message: "XYZ Hizmet A.Ş. faturası vadesi geçmiş",
			Type:    notification.TypeError, CreatedAt: ts("2024-01-15T09:15:00Z"), UserID: "usr_001",
		},
		notification.Notification{
			ID: "ntf_003", Title: "Yeni Randevu",
			Message: "Ayşe Yılmaz için yeni randevu oluşturuldu",
			Type:    notification.TypeInfo, Read: true, CreatedAt: ts("2024-01-15T08:45:00Z"), UserID: "usr_001",
		},
	)

	r.seedClinical()
	r.seedFinance()
}

func (r *Repositories) seedClinical() {
	r.Patients.Seed(
		patient.Patient{
			ID: "pat_001", FirstName: "Ayşe", LastName: "Yılmaz", DateOfBirth: day("1985-03-15"),
			Gender: patient.GenderFemale, Phone: "+90 532 123 4567", Email: "ayse.yilmaz@email.com",
			Address: "İstanbul, Kadıköy",
			EmergencyContact: patient.EmergencyContact{
				Name: "Mehmet Yılmaz", Phone: "+90 532 123 4568", Relationship: "Eş",
			},
			ReferralSource: "Aile Hekimi", PrimaryPsychologist: "Dr. Zeynep Kaya",
			Status: patient.StatusActive, RegistrationDate: day("2024-01-10"),
			Notes: "Anksiyete bozukluğu tedavisi", MedicalHistory: "Hipertansiyon",
			CurrentMedications: "Sertralin 50mg",
		},
		patient.Patient{
			ID: "pat_002", FirstName: "Mehmet", LastName: "Kaya", DateOfBirth: day("1979-11-02"),
			Gender: patient.GenderMale, Phone: "+90 533 456 7890",
			EmergencyContact: patient.EmergencyContact{
				Name: "Selin Kaya", Phone: "+90 533 456 7891", Relationship: "Eş",
			},
			PrimaryPsychologist: "Dr. Zeynep Kaya", Status: patient.StatusActive,
			RegistrationDate: day("2024-01-08"), Notes: "Çift terapisi",
		},
		patient.Patient{
			ID: "pat_003", FirstName: "Zeynep", LastName: "Demir", DateOfBirth: day("2001-05-30"),
			Gender: patient.GenderFemale, Phone: "+90 535 222 3344",
			EmergencyContact: patient.EmergencyContact{
				Name: "Hasan Demir", Phone: "+90 535 222 3345", Relationship: "Baba",
			},
			PrimaryPsychologist: "Dr. Zeynep Kaya", Status: patient.StatusActive,
			RegistrationDate: day("2024-01-12"), Notes: "Psikolojik değerlendirme",
		},
		patient.Patient{
			ID: "pat_004", FirstName: "Can", LastName: "Demir", DateOfBirth: day("1992-07-22"),
			Gender: patient.GenderMale, Phone: "+90 533 987 6543", Email: "can.demir@email.com",
			EmergencyContact: patient.EmergencyContact{
				Name: "Fatma Demir", Phone: "+90 533 987 6544", Relationship: "Anne",
			},
			PrimaryPsychologist: "Dr. Ahmet Özkan", Status: patient.StatusActive,
			RegistrationDate: day("2024-01-05"), Notes: "Depresyon tedavisi",
		},
	)

	r.Sessions.Seed(
		clinical.Session{
			ID: "ses_001", PatientID: "pat_001", PsychologistID: "dr-zeynep-kaya",
			Date: day("2024-01-15"), StartTime: "10:00", EndTime: "10:50",
			Type: clinical.SessionIndividual, Status: clinical.SessionCompleted,
			Notes:         "Hasta anksiyete seviyesinde azalma bildirdi. Nefes egzersizleri etkili olmuş.",
			Interventions: []string{"Bilişsel Yeniden Yapılandırma", "Nefes Egzersizleri"},
			Homework:      "Günlük düşünce kaydı tutmaya devam",
			Mood:          ptr(6), Progress: "İyi", Duration: 50,
		},
		clinical.Session{
			ID: "ses_002", PatientID: "pat_004", PsychologistID: "dr-ahmet-ozkan",
			Date: day("2024-01-16"), StartTime: "14:00", EndTime: "14:50",
			Type: clinical.SessionIndividual, Status: clinical.SessionScheduled, Duration: 50,
		},
	)

	r.Assessments.Seed(clinical.Assessment{
		ID: "asm_001", PatientID: "pat_001", PsychologistID: "dr-zeynep-kaya",
		Type: "Beck Anksiyete Envanteri", Date: day("2024-01-10"),
		Results:         map[string]any{"totalScore": 28, "severity": "Orta"},
		Interpretation:  "Orta düzeyde anksiyete belirtileri mevcut",
		Recommendations: []string{"Bilişsel davranışçı terapi", "Gevşeme teknikleri"},
		Status:          clinical.AssessmentCompleted,
	})

	r.TherapyPlans.Seed(clinical.TherapyPlan{
		ID: "tp_001", PatientID: "pat_001", PsychologistID: "dr-zeynep-kaya",
		Goals: []string{
			"Anksiyete seviyesini azaltmak",
			"Başa çıkma stratejileri geliştirmek",
			"Sosyal işlevselliği artırmak",
		},
		Interventions: []string{
			"Bilişsel Davranışçı Terapi",
			"Gevşeme Teknikleri",
			"Maruz Bırakma Terapisi",
		},
		Timeline: "12 hafta", ReviewDate: day("2024-04-15"), Status: clinical.PlanActive,
		CreatedDate: day("2024-01-10"), Progress: "Hedeflerin %60'ı gerçekleştirildi",
	})

	r.PhoneLogs.Seed(
		phonelog.PhoneLog{
			ID: "call_001", Date: day("2024-01-15"), Time: "09:30",
			CallerName: "Ayşe Yılmaz", CallerPhone: "+90 532 123 4567",
			Purpose: "Randevu değişikliği", Message: "Yarınki randevusunu ertelemek istiyor",
			TakenBy: "Sekreter Elif", FollowUpRequired: true, Status: phonelog.StatusPending,
		},
		phonelog.PhoneLog{
			ID: "call_002", Date: day("2024-01-15"), Time: "11:15",
			CallerName: "Mehmet Kaya", CallerPhone: "+90 533 456 7890",
			Purpose: "Bilgi alma", Message: "Terapi ücretleri hakkında bilgi aldı",
			TakenBy: "Sekreter Elif", Status: phonelog.StatusCompleted,
		},
	)

	r.Documents.Seed(
		document.Document{
			ID: "doc_001", Title: "Bilgilendirilmiş Onam Formu", Type: document.TypeConsent,
			PatientID: "pat_001", UploadedBy: "Sekreter Elif", UploadDate: day("2024-01-10"),
			FileURL:     "/documents/consent-ayse-yilmaz.pdf",
			Description: "Ayşe Yılmaz için imzalanmış onam formu",
			Tags:        []string{"onam", "yasal"},
		},
		document.Document{
			ID: "doc_002", Title: "İlk Değerlendirme Raporu", Type: document.TypeAssessment,
			PatientID: "pat_001", UploadedBy: "Dr. Zeynep Kaya", UploadDate: day("2024-01-12"),
			FileURL:     "/documents/assessment-ayse-yilmaz.pdf",
			Description: "Başlangıç değerlendirme raporu",
			Tags:        []string{"değerlendirme", "rapor"},
		},
	)
}

func (r *Repositories) seedFinance() {
	r.Payments.Seed(
		finance.Payment{
			ID: "pay_001", PatientID: "pat_001", PatientName: "Ayşe Yılmaz", Amount: tl(350),
			Method: finance.MethodCard, Status: finance.PaymentCompleted,
			Date: day("2024-01-15"), Time: "10:30", Description: "Bireysel terapi seansı",
			SessionID: "ses_001", ProcessedBy: "Sekreter Elif", CreatedAt: ts("2024-01-15T10:30:00Z"),
		},
		finance.Payment{
			ID: "pay_002", PatientID: "pat_002", PatientName: "Mehmet Kaya", Amount: tl(400),
			Method: finance.MethodCash, Status: finance.PaymentCompleted,
			Date: day("2024-01-15"), Time: "14:00", Description: "Çift terapisi seansı",
			ProcessedBy: "Sekreter Elif", CreatedAt: ts("2024-01-15T14:00:00Z"),
		},
		finance.Payment{
			ID: "pay_003", PatientID: "pat_003", PatientName: "Zeynep Demir", Amount: tl(300),
			Method: finance.MethodInsurance, Status: finance.PaymentPending,
			Date: day("2024-01-15"), Time: "16:30", Description: "Psikolojik değerlendirme",
			ProcessedBy: "Sekreter Elif", CreatedAt: ts("2024-01-15T16:30:00Z"),
		},
	)

	// Totals are derived from the items on load.
	r.Invoices.Seed(
		finance.Invoice{
			ID: "inv_001", InvoiceNumber: "INV-2024-001", PatientID: "pat_001", PatientName: "Ayşe Yılmaz",
			Items: []finance.InvoiceItem{{
				ID: "item_001", Description: "Bireysel Terapi Seansı",
				Quantity: 1, UnitPrice: tl(350), TaxRate: tl(18),
			}},
			Status: finance.InvoicePaid, IssueDate: day("2024-01-15"), DueDate: day("2024-01-30"),
			PaidDate: day("2024-01-15"), CreatedBy: "Dr. Zeynep Kaya", CreatedAt: ts("2024-01-15T09:00:00Z"),
		},
		finance.Invoice{
			ID: "inv_002", InvoiceNumber: "INV-2024-002", PatientID: "pat_002", PatientName: "Mehmet Kaya",
			Items: []finance.InvoiceItem{{
				ID: "item_002", Description: "Çift Terapisi Seansı",
				Quantity: 1, UnitPrice: tl(400), TaxRate: tl(18),
			}},
			Status: finance.InvoiceSent, IssueDate: day("2024-01-15"), DueDate: day("2024-02-15"),
			CreatedBy: "Dr. Zeynep Kaya", CreatedAt: ts("2024-01-15T14:00:00Z"),
		},
	)

	jan := 1
	r.Budgets.Seed(
		finance.Budget{
			ID: "bud_001", Category: "Personel Giderleri", BudgetAmount: tl(25000), SpentAmount: tl(18500),
			Period: finance.PeriodMonthly, Year: 2024, Month: ptr(jan),
			Status: finance.BudgetActive, CreatedAt: ts("2024-01-01T00:00:00Z"),
		},
		finance.Budget{
			ID: "bud_002", Category: "Kira ve Faturalar", BudgetAmount: tl(8000), SpentAmount: tl(7200),
			Period: finance.PeriodMonthly, Year: 2024, Month: ptr(jan),
			Status: finance.BudgetActive, CreatedAt: ts("2024-01-01T00:00:00Z"),
		},
		finance.Budget{
			ID: "bud_003", Category: "Pazarlama", BudgetAmount: tl(3000), SpentAmount: tl(3200),
			Period: finance.PeriodMonthly, Year: 2024, Month: ptr(jan),
			Status: finance.BudgetExceeded, CreatedAt: ts("2024-01-01T00:00:00Z"),
		},
	)
}

// DemoUser pairs a staff profile with its plain-text demo password. The
// auth service hashes the password before the account is stored.
type DemoUser struct {
	User     domain.User
	Password string
}

func DemoUsers() []DemoUser {
	return []DemoUser{
		{User: domain.User{
			ID: "usr_001", Name: "Admin User", Email: "admin@psiklinik.com", Role: domain.RoleAdmin,
			Department: "Yönetim", Phone: "+90 532 100 0001", IsActive: true,
		}, Password: "admin123"},
		{User: domain.User{
			ID: "usr_002", Name: "Ahmet Tekniker", Email: "ahmet@psiklinik.com", Role: domain.RoleITManager,
			Department: "Bilgi İşlem", Phone: "+90 532 100 0002", IsActive: true,
		}, Password: "ahmet123"},
		{User: domain.User{
			ID: "usr_003", Name: "Elif Sekreter", Email: "elif@psiklinik.com", Role: domain.RoleSecretary,
			Department: "İdari İşler", Phone: "+90 532 100 0003", IsActive: true,
		}, Password: "elif123"},
		{User: domain.User{
			ID: "usr_004", Name: "Merve Asistan", Email: "merve@psiklinik.com", Role: domain.RoleAssistantPsychologist,
			Department: "Psikoloji", Phone: "+90 532 100 0004", Specialization: "Çocuk Psikolojisi", IsActive: true,
		}, Password: "merve123"},
		{User: domain.User{
			ID: "usr_005", Name: "Dr. Zeynep Kaya", Email: "zeynep@psiklinik.com", Role: domain.RolePsychologist,
			Department: "Psikoloji", Phone: "+90 532 100 0005", Specialization: "Anksiyete Bozuklukları", IsActive: true,
		}, Password: "zeynep123"},
	}
}
