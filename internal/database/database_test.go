package database

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"zephyr/internal/config"
	"zephyr/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestSQLiteDSN(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"Plain file", "social_network.db", "social_network.db?_foreign_keys=on"},
		{"Existing query", "file:test.db?cache=shared", "file:test.db?cache=shared&_foreign_keys=on"},
		{"Already set", "app.db?_foreign_keys=off", "app.db?_foreign_keys=off"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SQLiteDSN(tt.path))
		})
	}
}

func TestDialector(t *testing.T) {
	for _, driver := range []string{"postgres", "mysql", "sqlite"} {
		d, err := Dialector(&config.Config{DBDriver: driver, DBHost: "localhost", DBName: "x", DBPath: "x.db"})
		require.NoError(t, err, driver)
		assert.Equal(t, driver, d.Name())
	}

	_, err := Dialector(&config.Config{DBDriver: "oracle"})
	assert.Error(t, err)
}

func TestSchemaPolicy(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Config
		wantSQL bool
		wantAut bool
		wantErr bool
	}{
		{"Postgres hybrid dev", config.Config{DBDriver: "postgres", DBSchemaMode: "hybrid", Env: "development"}, true, true, false},
		{"Postgres hybrid prod", config.Config{DBDriver: "postgres", DBSchemaMode: "hybrid", Env: "production"}, true, false, false},
		{"Postgres default mode", config.Config{DBDriver: "postgres"}, true, true, false},
		{"Postgres sql", config.Config{DBDriver: "postgres", DBSchemaMode: "sql"}, true, false, false},
		{"Sqlite hybrid", config.Config{DBDriver: "sqlite", DBSchemaMode: "hybrid", Env: "production"}, false, true, false},
		{"Mysql auto", config.Config{DBDriver: "mysql", DBSchemaMode: "auto"}, false, true, false},
		{"Sqlite sql rejected", config.Config{DBDriver: "sqlite", DBSchemaMode: "sql"}, false, false, true},
		{"Unknown mode", config.Config{DBDriver: "postgres", DBSchemaMode: "yolo"}, false, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runSQL, runAuto, err := schemaPolicy(&tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, runSQL)
			assert.Equal(t, tt.wantAut, runAuto)
		})
	}
}

func TestEmbeddedMigrations(t *testing.T) {
	registered := GetMigrations()
	require.Len(t, registered, 2)
	assert.Equal(t, "000001_create_social_schema", registered[0].String())
	assert.Contains(t, registered[0].UpScript, "CREATE TABLE IF NOT EXISTS friends")
	assert.Contains(t, registered[0].DownScript, "DROP TABLE IF EXISTS users")
	assert.NotNil(t, GetMigrationByVersion(2))
	assert.Nil(t, GetMigrationByVersion(99))
}

func TestLoadMigrations(t *testing.T) {
	fsys := fstest.MapFS{
		"m/000002_second.up.sql":   {Data: []byte("SELECT 2;")},
		"m/000002_second.down.sql": {Data: []byte("SELECT -2;")},
		"m/000001_first.up.sql":    {Data: []byte("SELECT 1;")},
		"m/000001_first.down.sql":  {Data: []byte("SELECT -1;")},
		"m/README.md":              {Data: []byte("ignored")},
	}

	loaded, err := LoadMigrations(fsys, "m")
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, 1, loaded[0].Version)
	assert.Equal(t, "first", loaded[0].Name)
	assert.Equal(t, "SELECT -2;", loaded[1].DownScript)

	t.Run("missing down script", func(t *testing.T) {
		_, err := LoadMigrations(fstest.MapFS{"m/000001_only.up.sql": {Data: []byte("SELECT 1;")}}, "m")
		assert.Error(t, err)
	})
}

func TestValidateAppliedVersions(t *testing.T) {
	registered := []Migration{{Version: 1, Name: "a"}, {Version: 2, Name: "b"}}

	assert.NoError(t, validateAppliedVersions(nil, registered))
	assert.NoError(t, validateAppliedVersions([]int{1, 2}, registered))

	err := validateAppliedVersions([]int{1, 7, 3}, registered)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "000003, 000007")
}

func TestPendingMigrations(t *testing.T) {
	registered := []Migration{{Version: 1}, {Version: 2}, {Version: 3}}
	pending := pendingMigrations([]int{1, 3}, registered)
	require.Len(t, pending, 1)
	assert.Equal(t, 2, pending[0].Version)
}

func TestGetAppliedMigrations_MissingTableIsEmpty(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT .* FROM "migration_logs"`).
		WillReturnError(errors.New(`ERROR: relation "migration_logs" does not exist (SQLSTATE 42P01)`))

	versions, err := NewMigrationStore(db).GetAppliedMigrations(context.Background())
	require.NoError(t, err)
	assert.Empty(t, versions)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAutoMigrate_SQLiteCascades(t *testing.T) {
	db, err := Open(sqlite.Open(SQLiteDSN("file:cascade?mode=memory&cache=shared")))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	defer sqlDB.Close()

	require.NoError(t, AutoMigrate(context.Background(), db))

	u := models.User{Username: "owner", Email: "owner@example.com", FullName: "Owner"}
	require.NoError(t, db.Create(&u).Error)
	p := models.Post{UserID: u.ID, Content: "hello"}
	require.NoError(t, db.Omit("Author").Create(&p).Error)
	c := models.Comment{UserID: u.ID, PostID: p.ID, Content: "hi"}
	require.NoError(t, db.Omit("Author", "Post").Create(&c).Error)

	require.NoError(t, db.Delete(&models.User{}, u.ID).Error)

	var posts, comments int64
	db.Model(&models.Post{}).Count(&posts)
	db.Model(&models.Comment{}).Count(&comments)
	assert.Zero(t, posts)
	assert.Zero(t, comments)
}

func TestOpen_TranslatesDuplicateKey(t *testing.T) {
	db, err := Open(sqlite.Open(SQLiteDSN("file:dupes?mode=memory&cache=shared")))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	defer sqlDB.Close()

	require.NoError(t, AutoMigrate(context.Background(), db))
	require.NoError(t, db.Create(&models.User{Username: "dup", Email: "a@example.com", FullName: "A"}).Error)

	err = db.Create(&models.User{Username: "dup", Email: "b@example.com", FullName: "B"}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}
