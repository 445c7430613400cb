package helpers

import (
	"context"
	"reflect"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/pkaveh/loyalty-gateway/internal/repository"
	"github.com/pkaveh/loyalty-gateway/pkg/pg"
	"github.com/pkaveh/loyalty-gateway/pkg/redis"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func SetupTestDB(t *testing.T) *pg.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&repository.CustomerEntity{},
		&repository.ItemEntity{},
		&repository.ItemPointsEntity{},
		&repository.SettingsEntity{},
		&repository.BrandingEntity{},
		&repository.TransactionEntity{},
	)
	require.NoError(t, err)

	pgDB := &pg.DB{}
	pgDBValue := reflect.ValueOf(pgDB).Elem()

	readField := pgDBValue.FieldByName("read")
	writeField := pgDBValue.FieldByName("write")

	readField = reflect.NewAt(readField.Type(), readField.Addr().UnsafePointer()).Elem()
	writeField = reflect.NewAt(writeField.Type(), writeField.Addr().UnsafePointer()).Elem()

	readField.Set(reflect.ValueOf(db))
	writeField.Set(reflect.ValueOf(db))

	return pgDB
}

func SetupTestRedis(t *testing.T) (*miniredis.Miniredis, redis.RedisAdapter) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := goredis.NewUniversalClient(&goredis.UniversalOptions{
		Addrs: []string{mr.Addr()},
	})
	return mr, redis.NewAdapterFromClient(client, "")
}

func CreateTestCustomer(t *testing.T, db *pg.DB, id, name string) *repository.CustomerEntity {
	ctx := context.Background()
	customer := &repository.CustomerEntity{
		ID:   id,
		Name: name,
		PIN:  "1234",
	}
	err := db.Write(ctx).Create(customer).Error
	require.NoError(t, err)
	return customer
}

func CreateTestItem(t *testing.T, db *pg.DB, id int64, name string, pointsValue uint, active bool) *repository.ItemEntity {
	ctx := context.Background()
	item := &repository.ItemEntity{
		ID:          id,
		Name:        name,
		PointsValue: pointsValue,
		IsActive:    active,
	}
	err := db.Write(ctx).Create(item).Error
	require.NoError(t, err)
	return item
}

func SeedSettings(t *testing.T, db *pg.DB, threshold uint) {
	ctx := context.Background()
	settings := &repository.SettingsEntity{
		StorePIN:        "1234",
		PointsForReward: threshold,
		AdminUsername:   "admin",
		AdminPassword:   "password123",
	}
	require.NoError(t, db.Write(ctx).Create(settings).Error)
}

func WaitForCondition(t *testing.T, timeout time.Duration, condition func() bool) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false
}

func ContextWithTimeout(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func RandomCardToken() string {
	return "LC" + strconv.FormatInt(time.Now().UnixNano(), 10)
}

func Ptr[T any](v T) *T {
	return &v
}
