package xxxmock

import (
	"reflect"

	gomock "go.uber.org/mock/gomock"

	"github.com/LogosNetwork/logos-core-sub003/internal/crypto"
	"github.com/LogosNetwork/logos-core-sub003/internal/types"
)

var _ crypto.Signer = (*MockSigner)(nil)

// MockSigner is a gomock-convention mock of crypto.Signer.
type MockSigner struct {
	ctrl     *gomock.Controller
	recorder *MockSignerMockRecorder
}

// MockSignerMockRecorder records expected calls on MockSigner.
type MockSignerMockRecorder struct {
	mock *MockSigner
}

// NewMockSigner builds a MockSigner bound to ctrl.
func NewMockSigner(ctrl *gomock.Controller) *MockSigner {
	mock := &MockSigner{ctrl: ctrl}
	mock.recorder = &MockSignerMockRecorder{mock}
	return mock
}

// EXPECT returns the recorder used to set up expected calls.
func (m *MockSigner) EXPECT() *MockSignerMockRecorder {
	return m.recorder
}

func (m *MockSigner) Sign(digest types.Hash) (crypto.BLSShare, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Sign", digest)
	ret0, _ := ret[0].(crypto.BLSShare)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockSignerMockRecorder) Sign(digest interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Sign", reflect.TypeOf((*MockSigner)(nil).Sign), digest)
}

func (m *MockSigner) PublicKey() crypto.BLSPublicKey {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "PublicKey")
	ret0, _ := ret[0].(crypto.BLSPublicKey)
	return ret0
}

func (mr *MockSignerMockRecorder) PublicKey() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PublicKey", reflect.TypeOf((*MockSigner)(nil).PublicKey))
}

var _ crypto.Aggregator = (*MockAggregator)(nil)

// MockAggregator is a gomock-convention mock of crypto.Aggregator.
type MockAggregator struct {
	ctrl     *gomock.Controller
	recorder *MockAggregatorMockRecorder
}

// MockAggregatorMockRecorder records expected calls on MockAggregator.
type MockAggregatorMockRecorder struct {
	mock *MockAggregator
}

// NewMockAggregator builds a MockAggregator bound to ctrl.
func NewMockAggregator(ctrl *gomock.Controller) *MockAggregator {
	mock := &MockAggregator{ctrl: ctrl}
	mock.recorder = &MockAggregatorMockRecorder{mock}
	return mock
}

// EXPECT returns the recorder used to set up expected calls.
func (m *MockAggregator) EXPECT() *MockAggregatorMockRecorder {
	return m.recorder
}

func (m *MockAggregator) Aggregate(shares map[types.DelegateIdx]crypto.BLSShare) ([96]byte, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Aggregate", shares)
	ret0, _ := ret[0].([96]byte)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockAggregatorMockRecorder) Aggregate(shares interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Aggregate", reflect.TypeOf((*MockAggregator)(nil).Aggregate), shares)
}

func (m *MockAggregator) Verify(digest types.Hash, sig [96]byte, bitmap types.Bitmap, committee []crypto.BLSPublicKey) (bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Verify", digest, sig, bitmap, committee)
	ret0, _ := ret[0].(bool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockAggregatorMockRecorder) Verify(digest, sig, bitmap, committee interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Verify", reflect.TypeOf((*MockAggregator)(nil).Verify), digest, sig, bitmap, committee)
}
