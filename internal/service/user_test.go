package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AllenLi0110/simple-waterball/internal/model"
)

func TestGetProfile(t *testing.T) {
	store := newMemUserStore()
	require.NoError(t, store.Create(&model.User{Name: "水球", Username: "waterball"}))

	svc := NewUserService(store)

	user, err := svc.GetProfile(1)
	require.NoError(t, err)
	assert.Equal(t, "waterball", user.Username)

	_, err = svc.GetProfile(42)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestUpdateProfile(t *testing.T) {
	store := newMemUserStore()
	require.NoError(t, store.Create(&model.User{
		Name:     "水球",
		Username: "waterball",
		Location: "台北",
	}))

	svc := NewUserService(store)

	nickname := "水球潘"
	occupation := "軟體工程師"
	updated, err := svc.UpdateProfile(1, ProfileUpdate{
		Nickname:   &nickname,
		Occupation: &occupation,
	})
	require.NoError(t, err)

	assert.Equal(t, "水球潘", updated.Nickname)
	assert.Equal(t, "軟體工程師", updated.Occupation)
	// 未提交的字段保持不变
	assert.Equal(t, "水球", updated.Name)
	assert.Equal(t, "台北", updated.Location)
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	svc := NewUserService(newMemUserStore())

	name := "nobody"
	_, err := svc.UpdateProfile(42, ProfileUpdate{Name: &name})
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrNotFound)
}
