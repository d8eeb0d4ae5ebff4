package datasource

import (
	"context"

	"github.com/huangsam/gamepulse/internal/contract"
	"github.com/huangsam/gamepulse/schema"
	"github.com/stretchr/testify/mock"
)

// MockDataSource is a mock implementation of DataSource for testing.
type MockDataSource struct {
	mock.Mock
}

var _ contract.DataSource = &MockDataSource{} // Compile-time check

// Load implements the DataSource interface.
func (m *MockDataSource) Load(ctx context.Context, report schema.ReportName) (schema.Dataset, error) {
	args := m.Called(ctx, report)
	return args.Get(0).(schema.Dataset), args.Error(1)
}

// Status implements the DataSource interface.
func (m *MockDataSource) Status(ctx context.Context) (schema.SourceStatus, error) {
	args := m.Called(ctx)
	return args.Get(0).(schema.SourceStatus), args.Error(1)
}

// Close implements the DataSource interface.
func (m *MockDataSource) Close() error {
	args := m.Called()
	return args.Error(0)
}
