package migration

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_OrdersAndFilters(t *testing.T) {
	src := fstest.MapFS{
		"V2__roles.sql":  {Data: []byte("CREATE TABLE roles ();")},
		"V1__init.sql":   {Data: []byte("  CREATE TABLE skills ();\n")},
		"README.md":      {Data: []byte("ignored")},
		"V10__jobs.sql":  {Data: []byte("CREATE TABLE jobs ();")},
		"bad_name.sql":   {Data: []byte("ignored")},
	}

	migs, err := Load(src)
	require.NoError(t, err)

	require.Len(t, migs, 3)
	assert.Equal(t, int64(1), migs[0].Version)
	assert.Equal(t, "init", migs[0].Name)
	assert.Equal(t, "CREATE TABLE skills ();", migs[0].SQL)
	assert.Equal(t, int64(2), migs[1].Version)
	assert.Equal(t, int64(10), migs[2].Version)
	assert.Len(t, migs[0].Checksum, 64)
}

func TestLoad_RejectsDuplicatesAndEmpty(t *testing.T) {
	_, err := Load(fstest.MapFS{
		"V1__a.sql":  {Data: []byte("SELECT 1;")},
		"V01__b.sql": {Data: []byte("SELECT 2;")},
	})
	assert.ErrorContains(t, err, "duplicate migration version")

	_, err = Load(fstest.MapFS{"V1__a.sql": {Data: []byte("   ")}})
	assert.ErrorContains(t, err, "empty migration file")
}

func TestEmbeddedMigrations(t *testing.T) {
	src, err := Runner{}.source()
	require.NoError(t, err)

	migs, err := Load(src)
	require.NoError(t, err)

	require.NotEmpty(t, migs)
	assert.Equal(t, int64(1), migs[0].Version)
	assert.Contains(t, migs[0].SQL, "CREATE TABLE IF NOT EXISTS user_skills")
}
