package employee_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"go-wfm/internal/employee"
	employeeerrors "go-wfm/internal/employee/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type memEmployeeRepo struct {
	rows map[string]*employee.Employee
}

func newMemEmployeeRepo() *memEmployeeRepo {
	return &memEmployeeRepo{rows: make(map[string]*employee.Employee)}
}

func (m *memEmployeeRepo) WithTx(tx *sql.Tx) employee.Repository { return m }

func (m *memEmployeeRepo) Create(ctx context.Context, e *employee.Employee) error {
	cp := *e
	m.rows[e.ID.String()] = &cp
	return nil
}

func (m *memEmployeeRepo) FindAll(ctx context.Context) ([]employee.Employee, error) {
	var res []employee.Employee
	for _, e := range m.rows {
		res = append(res, *e)
	}
	return res, nil
}

func (m *memEmployeeRepo) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	e, ok := m.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *e
	return &cp, nil
}

func (m *memEmployeeRepo) ListPinHolders(ctx context.Context) ([]employee.Employee, error) {
	var res []employee.Employee
	for _, e := range m.rows {
		if e.PinHash != nil && e.Status == employee.StatusActive {
			res = append(res, *e)
		}
	}
	return res, nil
}

func (m *memEmployeeRepo) Update(ctx context.Context, e *employee.Employee) error {
	cp := *e
	m.rows[e.ID.String()] = &cp
	return nil
}

type fakeCounterRepo struct {
	next int64
}

func (f *fakeCounterRepo) GetNextValue(ctx context.Context, counterType string) (int64, error) {
	f.next++
	return f.next, nil
}

type employeeDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	repo    *memEmployeeRepo
	service employee.Service
}

func setupEmployeeTest(t *testing.T) *employeeDeps {
	t.Helper()
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	rdb, _ := redismock.NewClientMock()
	repo := newMemEmployeeRepo()
	svc := employee.NewService(db, repo, &fakeCounterRepo{}, rdb)
	return &employeeDeps{db: db, sqlMock: sqlMock, repo: repo, service: svc}
}

func (d *employeeDeps) seed(t *testing.T, pin string) *employee.Employee {
	t.Helper()
	e := &employee.Employee{
		ID:             uuid.New(),
		EmployeeNumber: "WH-000042",
		FullName:       "Dana Reyes",
		Email:          uuid.New().String() + "@example.com",
		Status:         employee.StatusActive,
		HireDate:       time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	if pin != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.MinCost)
		require.NoError(t, err)
		s := string(hash)
		e.PinHash = &s
	}
	d.repo.rows[e.ID.String()] = e
	return e
}

func TestEmployeeService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("generates an employee number when none is supplied", func(t *testing.T) {
		deps := setupEmployeeTest(t)

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		resp, err := deps.service.Create(ctx, employee.CreateEmployeeRequest{
			FullName: "Sam Okafor",
			Email:    "sam@example.com",
			HireDate: "2026-09-01",
		})

		require.NoError(t, err)
		assert.Equal(t, "WH-000001", resp.EmployeeNumber)
		assert.Equal(t, employee.StatusActive, resp.Status)
		assert.False(t, resp.HasPin)
	})

	t.Run("rejects a bad hire date before opening a transaction", func(t *testing.T) {
		deps := setupEmployeeTest(t)

		_, err := deps.service.Create(ctx, employee.CreateEmployeeRequest{
			FullName: "Sam Okafor",
			Email:    "sam@example.com",
			HireDate: "01-09-2026",
		})

		assert.Error(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestEmployeeService_SetPin(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a bcrypt hash", func(t *testing.T) {
		deps := setupEmployeeTest(t)
		e := deps.seed(t, "")

		err := deps.service.SetPin(ctx, e.ID.String(), "4821")
		require.NoError(t, err)

		stored := deps.repo.rows[e.ID.String()]
		require.NotNil(t, stored.PinHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*stored.PinHash), []byte("4821")))
	})

	t.Run("rejects a pin already held by another employee", func(t *testing.T) {
		deps := setupEmployeeTest(t)
		deps.seed(t, "4821")
		target := deps.seed(t, "")

		err := deps.service.SetPin(ctx, target.ID.String(), "4821")

		assert.ErrorIs(t, err, employeeerrors.ErrPinAlreadyInUse)
		assert.Nil(t, deps.repo.rows[target.ID.String()].PinHash)
	})

	t.Run("re-setting your own pin is allowed", func(t *testing.T) {
		deps := setupEmployeeTest(t)
		e := deps.seed(t, "4821")

		err := deps.service.SetPin(ctx, e.ID.String(), "4821")

		assert.NoError(t, err)
	})

	t.Run("terminated employees cannot hold a pin", func(t *testing.T) {
		deps := setupEmployeeTest(t)
		e := deps.seed(t, "")
		e.Status = employee.StatusTerminated

		err := deps.service.SetPin(ctx, e.ID.String(), "4821")

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeTerminated)
	})
}

func TestEmployeeService_Terminate(t *testing.T) {
	ctx := context.Background()

	t.Run("clears the pin and flips the status", func(t *testing.T) {
		deps := setupEmployeeTest(t)
		e := deps.seed(t, "4821")

		err := deps.service.Terminate(ctx, e.ID.String())
		require.NoError(t, err)

		stored := deps.repo.rows[e.ID.String()]
		assert.Nil(t, stored.PinHash)
		assert.Equal(t, employee.StatusTerminated, stored.Status)
	})

	t.Run("unknown employee", func(t *testing.T) {
		deps := setupEmployeeTest(t)

		err := deps.service.Terminate(ctx, uuid.New().String())

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}

func TestEmployeeService_GetOptions(t *testing.T) {
	ctx := context.Background()

	t.Run("terminated employees are excluded", func(t *testing.T) {
		deps := setupEmployeeTest(t)
		deps.seed(t, "")
		gone := deps.seed(t, "")
		gone.Status = employee.StatusTerminated

		res, err := deps.service.GetOptions(ctx)

		require.NoError(t, err)
		require.Len(t, res, 1)
		assert.NotEqual(t, gone.ID.String(), res[0].ID)
	})
}
