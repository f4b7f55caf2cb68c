package xxxmock

import (
	"reflect"

	gomock "go.uber.org/mock/gomock"

	"github.com/LogosNetwork/logos-core-sub003/internal/codec"
	"github.com/LogosNetwork/logos-core-sub003/internal/netio"
	"github.com/LogosNetwork/logos-core-sub003/internal/types"
)

var _ netio.Dispatcher = (*MockDispatcher)(nil)

// MockDispatcher is a gomock-convention mock of netio.Dispatcher.
type MockDispatcher struct {
	ctrl     *gomock.Controller
	recorder *MockDispatcherMockRecorder
}

// MockDispatcherMockRecorder records expected calls on MockDispatcher.
type MockDispatcherMockRecorder struct {
	mock *MockDispatcher
}

// NewMockDispatcher builds a MockDispatcher bound to ctrl.
func NewMockDispatcher(ctrl *gomock.Controller) *MockDispatcher {
	mock := &MockDispatcher{ctrl: ctrl}
	mock.recorder = &MockDispatcherMockRecorder{mock}
	return mock
}

// EXPECT returns the recorder used to set up expected calls.
func (m *MockDispatcher) EXPECT() *MockDispatcherMockRecorder {
	return m.recorder
}

func (m *MockDispatcher) Dispatch(remote types.DelegateIdx, consensusType codec.ConsensusType, msgType codec.MessageType, payload []byte) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "Dispatch", remote, consensusType, msgType, payload)
}

func (mr *MockDispatcherMockRecorder) Dispatch(remote, consensusType, msgType, payload interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Dispatch", reflect.TypeOf((*MockDispatcher)(nil).Dispatch), remote, consensusType, msgType, payload)
}
