package clients

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockWebhookClient struct {
	mock.Mock
}

func (m *MockWebhookClient) Post(ctx context.Context, url string, payload map[string]any) (int, error) {
	args := m.Called(ctx, url, payload)
	return args.Int(0), args.Error(1)
}

type MockOBSClient struct {
	mock.Mock
}

func (m *MockOBSClient) Connect(ctx context.Context, url string) error {
	args := m.Called(ctx, url)
	return args.Error(0)
}

func (m *MockOBSClient) IsConnected() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockOBSClient) Close() {
	m.Called()
}

func (m *MockOBSClient) SendRequest(requestType string, requestData map[string]any) error {
	args := m.Called(requestType, requestData)
	return args.Error(0)
}

type MockStreamerbotClient struct {
	mock.Mock
}

func (m *MockStreamerbotClient) Connect(ctx context.Context, url string) error {
	args := m.Called(ctx, url)
	return args.Error(0)
}

func (m *MockStreamerbotClient) IsConnected() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockStreamerbotClient) Close() {
	m.Called()
}

func (m *MockStreamerbotClient) Send(action string, data map[string]any) error {
	args := m.Called(action, data)
	return args.Error(0)
}
