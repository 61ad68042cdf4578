package database

import (
	"context"
	"testing"
	"testing/fstest"

	"barrique/internal/config"
	"barrique/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openMemory(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=1"), GormConfig())
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func TestSchemaPolicy(t *testing.T) {
	tests := []struct {
		name     string
		env      string
		mode     string
		driver   string
		wantSQL  bool
		wantAuto bool
		wantErr  bool
	}{
		{"hybrid dev postgres", "development", "", DriverPostgres, true, true, false},
		{"hybrid prod postgres", "production", "hybrid", DriverPostgres, true, false, false},
		{"sql only", "development", "sql", DriverPostgres, true, false, false},
		{"auto dev", "development", "auto", DriverPostgres, false, true, false},
		{"auto refused in prod", "production", "auto", DriverPostgres, false, false, true},
		{"auto refused in staging", "staging", "AUTO", DriverPostgres, false, false, true},
		{"sqlite always auto", "test", "sql", DriverSQLite, false, true, false},
		{"unknown mode", "development", "yolo", DriverPostgres, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{Env: tt.env, DBSchemaMode: tt.mode}
			runSQL, runAuto, err := schemaPolicy(cfg, tt.driver)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, runSQL)
			assert.Equal(t, tt.wantAuto, runAuto)
		})
	}
}

func TestEmbeddedMigrations(t *testing.T) {
	migrations := GetMigrations()
	require.NotEmpty(t, migrations)

	for i, m := range migrations {
		assert.NotEmpty(t, m.UpScript, m.String())
		assert.NotEmpty(t, m.DownScript, m.String())
		if i > 0 {
			assert.Greater(t, m.Version, migrations[i-1].Version)
		}
	}

	first := GetMigrationByVersion(1)
	require.NotNil(t, first)
	assert.Equal(t, "000001_init", first.String())
	for _, table := range []string{"users", "journeys", "expenditures", "recipes", "ingredients", "nutritional_values", "recipe_steps", "tools", "tags"} {
		assert.Contains(t, first.UpScript, "CREATE TABLE IF NOT EXISTS "+table+" ")
		assert.Contains(t, first.DownScript, "DROP TABLE IF EXISTS "+table+";")
	}
	assert.Nil(t, GetMigrationByVersion(999999))
}

func TestLoadMigrations_Errors(t *testing.T) {
	tests := []struct {
		name  string
		files fstest.MapFS
	}{
		{"missing down", fstest.MapFS{
			"m/000001_a.up.sql": {Data: []byte("SELECT 1;")},
		}},
		{"bad version", fstest.MapFS{
			"m/abc_a.up.sql":   {Data: []byte("SELECT 1;")},
			"m/abc_a.down.sql": {Data: []byte("SELECT 1;")},
		}},
		{"duplicate version", fstest.MapFS{
			"m/000001_a.up.sql":   {Data: []byte("SELECT 1;")},
			"m/000001_a.down.sql": {Data: []byte("SELECT 1;")},
			"m/1_b.up.sql":        {Data: []byte("SELECT 1;")},
			"m/1_b.down.sql":      {Data: []byte("SELECT 1;")},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadMigrations(tt.files, "m")
			assert.Error(t, err)
		})
	}
}

func TestRunMigrations_AppliesOnceAndRejectsUnknown(t *testing.T) {
	db := openMemory(t)
	ctx := context.Background()

	set := []Migration{
		{Version: 1, Name: "widgets", UpScript: "CREATE TABLE widgets (id INTEGER PRIMARY KEY);", DownScript: "DROP TABLE widgets;"},
		{Version: 2, Name: "gadgets", UpScript: "CREATE TABLE gadgets (id INTEGER PRIMARY KEY);", DownScript: "DROP TABLE gadgets;"},
	}

	require.NoError(t, runMigrations(ctx, db, set))
	require.NoError(t, runMigrations(ctx, db, set), "second run is a no-op")

	applied, err := NewMigrationStore(db).GetAppliedMigrations(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, applied)
	assert.True(t, db.Migrator().HasTable("gadgets"))

	err = runMigrations(ctx, db, set[:1])
	assert.ErrorContains(t, err, "000002")

	require.NoError(t, NewMigrationStore(db).RevertMigration(ctx, set[1]))
	assert.False(t, db.Migrator().HasTable("gadgets"))
}

func TestApplySchema_SQLiteAutoMigrates(t *testing.T) {
	db := openMemory(t)
	cfg := &config.Config{Env: "test", DBSchemaMode: SchemaModeSQL}

	require.NoError(t, ApplySchema(context.Background(), db, cfg))
	for _, model := range PersistentModels() {
		assert.True(t, db.Migrator().HasTable(model))
	}

	status, err := GetSchemaStatus(context.Background(), db, cfg)
	require.NoError(t, err)
	assert.False(t, status.WillRunSQL)
	assert.True(t, status.WillRunAutoMigrate)
	assert.Equal(t, DriverSQLite, status.Driver)
}

func TestConfigurePool_SQLiteSingleConnection(t *testing.T) {
	db := openMemory(t)
	require.NoError(t, configurePool(db, &config.Config{DBMaxOpenConns: 10}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}

func TestDialector(t *testing.T) {
	d, err := Dialector(&config.Config{DBDriver: DriverSQLite, DBSQLitePath: "x.db"})
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, d.Name())

	d, err = Dialector(&config.Config{DBDriver: DriverPostgres, DBHost: "localhost"})
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, d.Name())

	_, err = Dialector(&config.Config{DBDriver: "oracle"})
	assert.Error(t, err)
}

func TestPersistentModels_ParentsFirst(t *testing.T) {
	all := PersistentModels()
	require.Len(t, all, 9)
	_, ok := all[0].(*models.User)
	assert.True(t, ok, "users must be created before their dependents")
}
