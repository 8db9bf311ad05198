package services

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"user-directory-api/internal/application/ports"
	domain "user-directory-api/internal/domain/user"
	"user-directory-api/internal/infrastructure/mq"
	"user-directory-api/internal/interface/api/rest/dto/user"
	"user-directory-api/internal/validator"
)

// DirectoryService runs every mutation as one critical section:
// validate, check uniqueness, mutate, mirror. The scan-then-insert
// uniqueness check and the full-file rewrite are not atomic on their
// own, so a single lock guards them as a unit.
type DirectoryService struct {
	mu       sync.RWMutex
	storage  ports.Storage
	events   mq.InputCh
	mCounter *prometheus.CounterVec
}

func NewDirectoryService(
	storage ports.Storage,
	events mq.InputCh,
	mCounter *prometheus.CounterVec,
) ports.DirectoryService {
	return &DirectoryService{
		storage:  storage,
		events:   events,
		mCounter: mCounter,
	}
}

func (ds *DirectoryService) CreateUser(ctx context.Context, u domain.User) (domain.Stored, error) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	if err := validateUser(u); err != nil {
		return domain.Stored{}, err
	}
	if err := ds.checkUnique(ctx, u.Username, u.Phone, -1); err != nil {
		return domain.Stored{}, err
	}

	id, err := ds.storage.Insert(ctx, u)
	if err != nil {
		return domain.Stored{}, err
	}

	rec := domain.Stored{ID: id, User: u}

	ds.publish(http.MethodPost, rec)
	ds.mCounter.WithLabelValues("user_created_total").Inc()

	return rec, nil
}

func (ds *DirectoryService) FindUserByID(ctx context.Context, id domain.ID) (domain.Stored, error) {
	ds.mu.RLock()
	defer ds.mu.RUnlock()

	u, err := ds.storage.Get(ctx, id)
	if err != nil {
		return domain.Stored{}, err
	}

	return domain.Stored{ID: id, User: u}, nil
}

func (ds *DirectoryService) FindUsers(ctx context.Context) (domain.Records, error) {
	ds.mu.RLock()
	defer ds.mu.RUnlock()

	return ds.storage.Snapshot(ctx)
}

func (ds *DirectoryService) ReplaceUser(ctx context.Context, id domain.ID, u domain.User) (domain.Stored, error) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	if _, err := ds.storage.Get(ctx, id); err != nil {
		return domain.Stored{}, err
	}

	if err := validateUser(u); err != nil {
		return domain.Stored{}, err
	}
	if err := ds.checkUnique(ctx, u.Username, u.Phone, id); err != nil {
		return domain.Stored{}, err
	}

	if err := ds.storage.Replace(ctx, id, u); err != nil {
		return domain.Stored{}, err
	}

	rec := domain.Stored{ID: id, User: u}

	ds.publish(http.MethodPut, rec)
	ds.mCounter.WithLabelValues("user_replaced_total").Inc()

	return rec, nil
}

func (ds *DirectoryService) PatchUser(ctx context.Context, id domain.ID, p domain.Patch) (domain.Stored, error) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	if _, err := ds.storage.Get(ctx, id); err != nil {
		return domain.Stored{}, err
	}

	if err := validatePatch(p); err != nil {
		return domain.Stored{}, err
	}

	if username, ok := p.String(domain.FieldUsername); ok {
		if err := ds.checkUnique(ctx, username, "", id); err != nil {
			return domain.Stored{}, err
		}
	}

	updated, err := ds.storage.Patch(ctx, id, p)
	if err != nil {
		return domain.Stored{}, err
	}

	rec := domain.Stored{ID: id, User: updated}

	ds.publish(http.MethodPatch, rec)
	ds.mCounter.WithLabelValues("user_patched_total").Inc()

	return rec, nil
}

func (ds *DirectoryService) DeleteUser(ctx context.Context, id domain.ID) error {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	u, err := ds.storage.Get(ctx, id)
	if err != nil {
		return err
	}

	if err = ds.storage.Remove(ctx, id); err != nil {
		return err
	}

	ds.publish(http.MethodDelete, domain.Stored{ID: id, User: u})
	ds.mCounter.WithLabelValues("user_deleted_total").Inc()

	return nil
}

// checkUnique scans the live records for a username or phone collision,
// skipping the caller's own identifier. An empty phone skips the phone
// check, which patch uses since only username changes are re-checked.
func (ds *DirectoryService) checkUnique(ctx context.Context, username, phone string, self domain.ID) error {
	recs, err := ds.storage.Snapshot(ctx)
	if err != nil {
		return err
	}

	for _, rec := range recs {
		if rec.ID == self {
			continue
		}
		if rec.Username == username {
			return domain.ErrUsernameExists
		}
		if phone != "" && rec.Phone == phone {
			return domain.ErrPhoneExists
		}
	}

	return nil
}

func (ds *DirectoryService) publish(method string, rec domain.Stored) {
	if ds.events == nil {
		return
	}

	ds.events <- mq.Event{
		Id:      uuid.New(),
		TS:      time.Now(),
		Method:  method,
		UserID:  strconv.FormatInt(int64(rec.ID), 10),
		Payload: user.ToResponseUser(rec),
	}
}

func validateUser(u domain.User) error {
	if !validator.Phone(u.Phone) {
		return &domain.ValidationError{Field: domain.FieldPhone, Reason: "invalid phone number: digits only"}
	}
	if !validator.Age(u.Age) {
		return &domain.ValidationError{Field: domain.FieldAge, Reason: "invalid age: must be 1-99"}
	}
	if !validator.DOB(u.DOB) {
		return &domain.ValidationError{Field: domain.FieldDOB, Reason: "invalid date"}
	}
	if !validator.Email(u.Email) {
		return &domain.ValidationError{Field: domain.FieldEmail, Reason: "invalid email format"}
	}

	return nil
}

// validatePatch checks only the fields present in the input. A validated
// field carrying a value of the wrong JSON type fails its check the same
// way a malformed value does.
func validatePatch(p domain.Patch) error {
	if p.Has(domain.FieldPhone) {
		phone, ok := p.String(domain.FieldPhone)
		if !ok || !validator.Phone(phone) {
			return &domain.ValidationError{Field: domain.FieldPhone, Reason: "invalid phone number: digits only"}
		}
	}
	if p.Has(domain.FieldAge) {
		age, ok := p.Int(domain.FieldAge)
		if !ok || !validator.Age(age) {
			return &domain.ValidationError{Field: domain.FieldAge, Reason: "invalid age: must be 1-99"}
		}
	}
	if p.Has(domain.FieldDOB) {
		dob, ok := p.String(domain.FieldDOB)
		if !ok || !validator.DOB(dob) {
			return &domain.ValidationError{Field: domain.FieldDOB, Reason: "invalid dob format: use YYYY-MM-DD"}
		}
	}
	if p.Has(domain.FieldEmail) {
		email, ok := p.String(domain.FieldEmail)
		if !ok || !validator.Email(email) {
			return &domain.ValidationError{Field: domain.FieldEmail, Reason: "invalid email format"}
		}
	}

	return nil
}
