package seed

import (
	"regexp"
	"testing"
	"time"

	"recurate/internal/database"
	"recurate/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestBuildUser_ValidShape(t *testing.T) {
	f := NewFactory(nil, Options{})
	phone := regexp.MustCompile(`^\d{10}$`)

	for i := 0; i < 20; i++ {
		user := f.BuildUser("hash")
		assert.NotEmpty(t, user.FullName)
		assert.Contains(t, user.Email, "@")
		assert.Regexp(t, phone, user.Phone)
		assert.False(t, user.IsAdmin)
	}
}

func TestBuildPost_TimestampInRange(t *testing.T) {
	f := NewFactory(nil, Options{MaxDays: 30})
	user := &models.User{}
	user.ID = 1

	for i := 0; i < 20; i++ {
		post := f.BuildPost(user)
		assert.NotEmpty(t, post.Content)
		assert.Equal(t, uint(1), post.UserID)
		assert.Empty(t, post.VideoPath)
		age := time.Since(post.CreatedAt)
		assert.LessOrEqual(t, age.Hours(), float64((30+2)*24))
	}
}

func TestRun_PersistsUsersAndPosts(t *testing.T) {
	db := testDB(t)
	f := NewFactory(db, Options{Users: 3, PostsPerUser: 2, MaxDays: 7})
	require.NoError(t, f.Run())

	var userCount, postCount int64
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	require.NoError(t, db.Model(&models.Post{}).Count(&postCount).Error)
	assert.Equal(t, int64(3), userCount)
	assert.Equal(t, int64(6), postCount)
}
