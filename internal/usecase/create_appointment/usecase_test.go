package create_appointment

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BreezDev/kimq/internal/domain"
	apptRepo "github.com/BreezDev/kimq/internal/infra/storage/appointment"
	staffRepo "github.com/BreezDev/kimq/internal/infra/storage/staff"
	"github.com/BreezDev/kimq/internal/integrations/payments"
	"github.com/BreezDev/kimq/internal/service/availability"
	"github.com/BreezDev/kimq/pkg/ptr"
	"github.com/BreezDev/kimq/pkg/types"
)

var testDay = time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC) // понедельник

type fakeApptRepo struct {
	mu        sync.Mutex
	nextID    int64
	created   []*domain.Appointment
	createErr error
	stamped   map[int64]string
}

func (f *fakeApptRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	appt.ID = f.nextID
	appt.CreatedAt = time.Now()
	f.created = append(f.created, appt)
	return appt, nil
}

func (f *fakeApptRepo) SetPaymentInfo(_ context.Context, id int64, intentID, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stamped == nil {
		f.stamped = make(map[int64]string)
	}
	f.stamped[id] = intentID
	return nil
}

type fakeCatalogRepo struct {
	service *domain.Service
	err     error
}

func (f *fakeCatalogRepo) GetByID(_ context.Context, _ int64) (*domain.Service, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.service, nil
}

type fakeClientRepo struct {
	client *domain.Client
}

func (f *fakeClientRepo) FindOrCreate(_ context.Context, c *domain.Client) (*domain.Client, error) {
	if f.client != nil {
		return f.client, nil
	}
	c.ID = 500
	return c, nil
}

type fakeStaffRepo struct {
	members map[int64]*domain.StaffMember
	byRole  []*domain.StaffMember
}

func (f *fakeStaffRepo) GetByID(_ context.Context, id int64) (*domain.StaffMember, error) {
	if m, ok := f.members[id]; ok {
		return m, nil
	}
	return nil, staffRepo.ErrStaffNotFound
}

func (f *fakeStaffRepo) ListByRole(_ context.Context, _ domain.StaffRole) ([]*domain.StaffMember, error) {
	return f.byRole, nil
}

type fakePaymentRepo struct {
	mu      sync.Mutex
	records []*domain.Payment
}

func (f *fakePaymentRepo) Create(_ context.Context, p *domain.Payment) (*domain.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p.ID = int64(len(f.records) + 1)
	f.records = append(f.records, p)
	return p, nil
}

// fakeEngine отдает слоты по ID мастера и имитирует занятость через taken
type fakeEngine struct {
	mu       sync.Mutex
	slots    map[int64][]time.Time
	taken    map[string]bool
	checkErr error
}

func slotKey(employeeID int64, start time.Time) string {
	return fmt.Sprintf("%d/%s", employeeID, start.Format(time.RFC3339))
}

func (f *fakeEngine) ComputeOpenSlots(_ context.Context, employeeID int64, _ time.Time, _ time.Duration) ([]time.Time, error) {
	return f.slots[employeeID], nil
}

func (f *fakeEngine) CheckSlot(_ context.Context, employeeID int64, start time.Time, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.checkErr != nil {
		return f.checkErr
	}
	if f.taken[slotKey(employeeID, start)] {
		return availability.ErrSlotTaken
	}
	return nil
}

func (f *fakeEngine) markTaken(employeeID int64, start time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.taken == nil {
		f.taken = make(map[string]bool)
	}
	f.taken[slotKey(employeeID, start)] = true
}

type fakePayments struct {
	mu     sync.Mutex
	calls  int
	intent *payments.Intent
}

func (f *fakePayments) CreateIntent(_ context.Context, amountCents int64, _, _ string) (*payments.Intent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.intent != nil {
		return f.intent, nil
	}
	return &payments.Intent{ID: "pi_test", Status: "simulated", AmountCents: amountCents}, nil
}

type fakeNotify struct {
	mu     sync.Mutex
	emails int
	sms    int
}

func (f *fakeNotify) SendEmail(_, _, _, _, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.emails++
	return nil
}

func (f *fakeNotify) SendSMS(_, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sms++
	return nil
}

// fakeTxManager сериализует транзакции мьютексом, имитируя serializable изоляцию
type fakeTxManager struct {
	mu sync.Mutex
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testService() *domain.Service {
	return &domain.Service{ID: 3, Name: "Classic Lash Set", PriceCents: 12000, DepositCents: 3000}
}

func validRequest() *Request {
	return &Request{
		ServiceID:   3,
		Date:        testDay,
		StartTime:   types.TimeString("10:00"),
		ClientName:  "Ava Chen",
		ClientEmail: "ava@example.com",
	}
}

func newTestUseCase(appts *fakeApptRepo, staff *fakeStaffRepo, engine *fakeEngine, pay *fakePayments, notify *fakeNotify) *UseCase {
	return NewUseCase(
		appts,
		&fakeCatalogRepo{service: testService()},
		&fakeClientRepo{},
		staff,
		&fakePaymentRepo{},
		engine,
		pay,
		notify,
		&fakeTxManager{},
		time.Hour,
		nopLogger{},
	)
}

func TestExecuteValidation(t *testing.T) {
	uc := newTestUseCase(&fakeApptRepo{}, &fakeStaffRepo{}, &fakeEngine{}, &fakePayments{}, &fakeNotify{})

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"missing service", func(r *Request) { r.ServiceID = 0 }},
		{"negative employee", func(r *Request) { r.EmployeeID = ptr.Ptr(int64(-1)) }},
		{"zero date", func(r *Request) { r.Date = time.Time{} }},
		{"missing start time", func(r *Request) { r.StartTime = "" }},
		{"bad start time", func(r *Request) { r.StartTime = "25:99" }},
		{"missing name", func(r *Request) { r.ClientName = "  " }},
		{"missing email", func(r *Request) { r.ClientEmail = "" }},
		{"malformed email", func(r *Request) { r.ClientEmail = "not-an-email" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)

			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecutePreferredEmployee(t *testing.T) {
	appts := &fakeApptRepo{}
	staff := &fakeStaffRepo{members: map[int64]*domain.StaffMember{
		7: {ID: 7, Name: "Linh Tran", Role: domain.RoleEmployee},
	}}
	// Слоты мастера намеренно пусты: явный выбор мастера не требует,
	// чтобы слот был в его вычисленном расписании
	engine := &fakeEngine{}
	uc := newTestUseCase(appts, staff, engine, &fakePayments{}, &fakeNotify{})

	req := validRequest()
	req.EmployeeID = ptr.Ptr(int64(7))

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.EmployeeID)
	assert.Equal(t, "Linh Tran", resp.EmployeeName)
	require.Len(t, appts.created, 1)
	assert.Equal(t, int64(7), appts.created[0].EmployeeID)
}

func TestExecutePreferredEmployeeNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeApptRepo{}, &fakeStaffRepo{}, &fakeEngine{}, &fakePayments{}, &fakeNotify{})

	req := validRequest()
	req.EmployeeID = ptr.Ptr(int64(404))

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestExecuteAutoAssignsFirstFreeEmployee(t *testing.T) {
	start := time.Date(2026, 3, 16, 10, 0, 0, 0, time.UTC)
	appts := &fakeApptRepo{}
	staff := &fakeStaffRepo{byRole: []*domain.StaffMember{
		{ID: 2, Name: "Linh Tran", Role: domain.RoleEmployee},
		{ID: 3, Name: "Mai Pham", Role: domain.RoleEmployee},
	}}
	// Слот 10:00 есть только у второго мастера
	engine := &fakeEngine{slots: map[int64][]time.Time{
		2: {time.Date(2026, 3, 16, 14, 0, 0, 0, time.UTC)},
		3: {start},
	}}
	uc := newTestUseCase(appts, staff, engine, &fakePayments{}, &fakeNotify{})

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.EmployeeID)
}

func TestExecuteNoAvailability(t *testing.T) {
	staff := &fakeStaffRepo{byRole: []*domain.StaffMember{
		{ID: 2, Name: "Linh Tran", Role: domain.RoleEmployee},
	}}
	engine := &fakeEngine{slots: map[int64][]time.Time{2: {}}}
	uc := newTestUseCase(&fakeApptRepo{}, staff, engine, &fakePayments{}, &fakeNotify{})

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrNoAvailability)
}

func TestExecuteRecheckLosesRace(t *testing.T) {
	start := time.Date(2026, 3, 16, 10, 0, 0, 0, time.UTC)
	staff := &fakeStaffRepo{members: map[int64]*domain.StaffMember{
		2: {ID: 2, Name: "Linh Tran", Role: domain.RoleEmployee},
	}}
	engine := &fakeEngine{}
	engine.markTaken(2, start)
	uc := newTestUseCase(&fakeApptRepo{}, staff, engine, &fakePayments{}, &fakeNotify{})

	req := validRequest()
	req.EmployeeID = ptr.Ptr(int64(2))

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestExecuteUniqueIndexBackstop(t *testing.T) {
	staff := &fakeStaffRepo{members: map[int64]*domain.StaffMember{
		2: {ID: 2, Name: "Linh Tran", Role: domain.RoleEmployee},
	}}
	appts := &fakeApptRepo{createErr: apptRepo.ErrSlotConflict}
	uc := newTestUseCase(appts, staff, &fakeEngine{}, &fakePayments{}, &fakeNotify{})

	req := validRequest()
	req.EmployeeID = ptr.Ptr(int64(2))

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestExecuteCollectsDepositAndNotifies(t *testing.T) {
	appts := &fakeApptRepo{}
	staff := &fakeStaffRepo{members: map[int64]*domain.StaffMember{
		2: {ID: 2, Name: "Linh Tran", Role: domain.RoleEmployee},
	}}
	pay := &fakePayments{}
	notify := &fakeNotify{}
	uc := newTestUseCase(appts, staff, &fakeEngine{}, pay, notify)

	req := validRequest()
	req.EmployeeID = ptr.Ptr(int64(2))
	req.ClientPhone = ptr.Ptr("+15551234567")

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, 1, pay.calls)
	require.NotNil(t, resp.PaymentIntentID)
	assert.Equal(t, "pi_test", *resp.PaymentIntentID)
	assert.Equal(t, "pi_test", appts.stamped[resp.ID])
	assert.Equal(t, 1, notify.emails)
	assert.Equal(t, 1, notify.sms)
}

func TestExecuteSkipsZeroDeposit(t *testing.T) {
	appts := &fakeApptRepo{}
	staff := &fakeStaffRepo{members: map[int64]*domain.StaffMember{
		2: {ID: 2, Name: "Linh Tran", Role: domain.RoleEmployee},
	}}
	pay := &fakePayments{}
	uc := NewUseCase(
		appts,
		&fakeCatalogRepo{service: &domain.Service{ID: 3, Name: "Brow Wax", PriceCents: 4000, DepositCents: 0}},
		&fakeClientRepo{},
		staff,
		&fakePaymentRepo{},
		&fakeEngine{},
		pay,
		&fakeNotify{},
		&fakeTxManager{},
		time.Hour,
		nopLogger{},
	)

	req := validRequest()
	req.EmployeeID = ptr.Ptr(int64(2))

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, 0, pay.calls)
	assert.Nil(t, resp.PaymentIntentID)
	assert.Nil(t, resp.PaymentStatus)
}

// Два конкурентных бронирования одного слота: выигрывает ровно одно
func TestExecuteConcurrentBookingSameSlot(t *testing.T) {
	staff := &fakeStaffRepo{members: map[int64]*domain.StaffMember{
		2: {ID: 2, Name: "Linh Tran", Role: domain.RoleEmployee},
	}}
	engine := &fakeEngine{taken: make(map[string]bool)}
	appts := &fakeApptRepo{}

	// Create помечает слот занятым внутри "транзакции", как это делает
	// вставка в реальной БД
	txManager := &fakeTxManager{}
	uc := NewUseCase(
		&occupyingApptRepo{inner: appts, engine: engine},
		&fakeCatalogRepo{service: testService()},
		&fakeClientRepo{},
		staff,
		&fakePaymentRepo{},
		engine,
		&fakePayments{},
		&fakeNotify{},
		txManager,
		time.Hour,
		nopLogger{},
	)

	req1 := validRequest()
	req1.EmployeeID = ptr.Ptr(int64(2))
	req2 := validRequest()
	req2.EmployeeID = ptr.Ptr(int64(2))
	req2.ClientEmail = "mia@example.com"

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, req := range []*Request{req1, req2} {
		wg.Add(1)
		go func(i int, req *Request) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), req)
		}(i, req)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			assert.ErrorIs(t, err, ErrSlotTaken)
		}
	}
	assert.Equal(t, 1, winners)
	assert.Len(t, appts.created, 1)
}

// occupyingApptRepo помечает слот занятым при вставке
type occupyingApptRepo struct {
	inner  *fakeApptRepo
	engine *fakeEngine
}

func (o *occupyingApptRepo) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	created, err := o.inner.Create(ctx, appt)
	if err != nil {
		return nil, err
	}
	o.engine.markTaken(appt.EmployeeID, appt.StartTime)
	return created, nil
}

func (o *occupyingApptRepo) SetPaymentInfo(ctx context.Context, id int64, intentID, status string) error {
	return o.inner.SetPaymentInfo(ctx, id, intentID, status)
}
