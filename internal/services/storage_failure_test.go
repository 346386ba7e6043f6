package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/family-graph-api/internal/constants"
	"github.com/yukikurage/family-graph-api/internal/dto"
	"github.com/yukikurage/family-graph-api/internal/repository"
	"github.com/yukikurage/family-graph-api/internal/utils"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var errConnectionReset = errors.New("driver: connection reset by peer")

func newMockStore(t *testing.T) (repository.Store, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	return repository.NewStore(db), mock
}

func assertInternal(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternal)
	assert.NotErrorIs(t, err, errConnectionReset, "driver error must not leak through the error chain")
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), errConnectionReset.Error())
}

func TestStorageFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("list people", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery("SELECT (.+) FROM `people`").WillReturnError(errConnectionReset)

		_, err := NewPersonService(store).List(ctx, 1)

		assertInternal(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("get person", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery("SELECT (.+) FROM `people`").WillReturnError(errConnectionReset)

		_, err := NewPersonService(store).Get(ctx, 1, 2)

		assertInternal(t, err)
	})

	t.Run("relationship endpoint check rolls back", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT count").WillReturnError(errConnectionReset)
		mock.ExpectRollback()

		_, err := NewRelationshipService(store).Create(ctx, 1, dto.RelationshipInput{Person1ID: 2, Person2ID: 3, Type: "father"})

		assertInternal(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("delete event", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM `events`").WillReturnError(errConnectionReset)
		mock.ExpectRollback()

		err := NewEventService(store).Delete(ctx, 1, 2)

		assertInternal(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("register username check", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery("SELECT (.+) FROM `users`").WillReturnError(errConnectionReset)

		_, err := NewAuthService(store, NewCredentialStore(4), NewSessionService(store, time.Hour)).
			Register(ctx, RegisterInput{Username: "alice", Password: "secret123"})

		assertInternal(t, err)
	})
}

func TestSessionService_ResolveSwallowsStorageErrors(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery("SELECT (.+) FROM `users`").WillReturnError(errConnectionReset)

	token, err := utils.GenerateSessionToken()
	require.NoError(t, err)

	profile := NewSessionService(store, time.Hour).Resolve(context.Background(), constants.BearerPrefix+token)

	assert.Nil(t, profile)
	assert.NoError(t, mock.ExpectationsWereMet())
}
