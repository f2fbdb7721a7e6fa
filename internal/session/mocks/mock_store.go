package mocks

import (
	"github.com/stretchr/testify/mock"

	"smartdoc/internal/model"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Token() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockStore) SetToken(token string) error {
	args := m.Called(token)
	return args.Error(0)
}

func (m *MockStore) User() (model.User, bool) {
	args := m.Called()
	return args.Get(0).(model.User), args.Bool(1)
}

func (m *MockStore) SetUser(user model.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockStore) Clear() error {
	args := m.Called()
	return args.Error(0)
}
