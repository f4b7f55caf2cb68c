// Package xxxmock provides hand-written gomock-convention test doubles
// for the Store/NetIO/Crypto boundaries, in place of generated ones since
// nothing in this tree invokes mockgen.
package xxxmock

import (
	"reflect"

	gomock "go.uber.org/mock/gomock"

	"github.com/LogosNetwork/logos-core-sub003/internal/store"
	"github.com/LogosNetwork/logos-core-sub003/internal/types"
)

var _ store.Tx = (*MockTx)(nil)

// MockTx is a gomock-convention mock of store.Tx.
type MockTx struct {
	ctrl     *gomock.Controller
	recorder *MockTxMockRecorder
}

// MockTxMockRecorder records expected calls on MockTx.
type MockTxMockRecorder struct {
	mock *MockTx
}

// NewMockTx builds a MockTx bound to ctrl.
func NewMockTx(ctrl *gomock.Controller) *MockTx {
	mock := &MockTx{ctrl: ctrl}
	mock.recorder = &MockTxMockRecorder{mock}
	return mock
}

// EXPECT returns the recorder used to set up expected calls.
func (m *MockTx) EXPECT() *MockTxMockRecorder {
	return m.recorder
}

func (m *MockTx) PutRB(hash types.Hash, rb *types.RequestBlock) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "PutRB", hash, rb)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockTxMockRecorder) PutRB(hash interface{}, rb interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PutRB", reflect.TypeOf((*MockTx)(nil).PutRB), hash, rb)
}

func (m *MockTx) GetRB(hash types.Hash) (*types.RequestBlock, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetRB", hash)
	ret0, _ := ret[0].(*types.RequestBlock)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockTxMockRecorder) GetRB(hash interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetRB", reflect.TypeOf((*MockTx)(nil).GetRB), hash)
}

func (m *MockTx) PutMB(hash types.Hash, mb *types.MicroBlock) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "PutMB", hash, mb)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockTxMockRecorder) PutMB(hash interface{}, mb interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PutMB", reflect.TypeOf((*MockTx)(nil).PutMB), hash, mb)
}

func (m *MockTx) GetMB(hash types.Hash) (*types.MicroBlock, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetMB", hash)
	ret0, _ := ret[0].(*types.MicroBlock)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockTxMockRecorder) GetMB(hash interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetMB", reflect.TypeOf((*MockTx)(nil).GetMB), hash)
}

func (m *MockTx) PutEB(hash types.Hash, eb *types.EpochBlock) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "PutEB", hash, eb)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockTxMockRecorder) PutEB(hash interface{}, eb interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PutEB", reflect.TypeOf((*MockTx)(nil).PutEB), hash, eb)
}

func (m *MockTx) GetEB(hash types.Hash) (*types.EpochBlock, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetEB", hash)
	ret0, _ := ret[0].(*types.EpochBlock)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockTxMockRecorder) GetEB(hash interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetEB", reflect.TypeOf((*MockTx)(nil).GetEB), hash)
}

func (m *MockTx) SetRBTip(delegate types.DelegateIdx, hash types.Hash) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SetRBTip", delegate, hash)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockTxMockRecorder) SetRBTip(delegate interface{}, hash interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetRBTip", reflect.TypeOf((*MockTx)(nil).SetRBTip), delegate, hash)
}

func (m *MockTx) GetRBTip(delegate types.DelegateIdx) (types.Hash, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetRBTip", delegate)
	ret0, _ := ret[0].(types.Hash)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockTxMockRecorder) GetRBTip(delegate interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetRBTip", reflect.TypeOf((*MockTx)(nil).GetRBTip), delegate)
}

func (m *MockTx) SetMBTip(hash types.Hash) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SetMBTip", hash)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockTxMockRecorder) SetMBTip(hash interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetMBTip", reflect.TypeOf((*MockTx)(nil).SetMBTip), hash)
}

func (m *MockTx) GetMBTip() (types.Hash, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetMBTip")
	ret0, _ := ret[0].(types.Hash)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockTxMockRecorder) GetMBTip() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetMBTip", reflect.TypeOf((*MockTx)(nil).GetMBTip))
}

func (m *MockTx) SetEBTip(hash types.Hash) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SetEBTip", hash)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockTxMockRecorder) SetEBTip(hash interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetEBTip", reflect.TypeOf((*MockTx)(nil).SetEBTip), hash)
}

func (m *MockTx) GetEBTip() (types.Hash, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetEBTip")
	ret0, _ := ret[0].(types.Hash)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockTxMockRecorder) GetEBTip() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetEBTip", reflect.TypeOf((*MockTx)(nil).GetEBTip))
}

func (m *MockTx) PutAccount(account types.Hash, a *types.UserAccount) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "PutAccount", account, a)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockTxMockRecorder) PutAccount(account interface{}, a interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PutAccount", reflect.TypeOf((*MockTx)(nil).PutAccount), account, a)
}

func (m *MockTx) GetAccount(account types.Hash) (*types.UserAccount, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetAccount", account)
	ret0, _ := ret[0].(*types.UserAccount)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockTxMockRecorder) GetAccount(account interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetAccount", reflect.TypeOf((*MockTx)(nil).GetAccount), account)
}

func (m *MockTx) PutTokenAccount(token types.Hash, a *types.TokenAccount) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "PutTokenAccount", token, a)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockTxMockRecorder) PutTokenAccount(token interface{}, a interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PutTokenAccount", reflect.TypeOf((*MockTx)(nil).PutTokenAccount), token, a)
}

func (m *MockTx) GetTokenAccount(token types.Hash) (*types.TokenAccount, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetTokenAccount", token)
	ret0, _ := ret[0].(*types.TokenAccount)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockTxMockRecorder) GetTokenAccount(token interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetTokenAccount", reflect.TypeOf((*MockTx)(nil).GetTokenAccount), token)
}

func (m *MockTx) PutReceive(hash types.Hash, r *types.ReceiveBlock) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "PutReceive", hash, r)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockTxMockRecorder) PutReceive(hash interface{}, r interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PutReceive", reflect.TypeOf((*MockTx)(nil).PutReceive), hash, r)
}

func (m *MockTx) GetReceive(hash types.Hash) (*types.ReceiveBlock, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetReceive", hash)
	ret0, _ := ret[0].(*types.ReceiveBlock)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockTxMockRecorder) GetReceive(hash interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetReceive", reflect.TypeOf((*MockTx)(nil).GetReceive), hash)
}

func (m *MockTx) PutRequest(hash types.Hash, req *types.Request, loc store.RequestLocator) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "PutRequest", hash, req, loc)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockTxMockRecorder) PutRequest(hash interface{}, req interface{}, loc interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PutRequest", reflect.TypeOf((*MockTx)(nil).PutRequest), hash, req, loc)
}

func (m *MockTx) GetRequest(hash types.Hash) (*types.Request, store.RequestLocator, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetRequest", hash)
	ret0, _ := ret[0].(*types.Request)
	ret1, _ := ret[1].(store.RequestLocator)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

func (mr *MockTxMockRecorder) GetRequest(hash interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetRequest", reflect.TypeOf((*MockTx)(nil).GetRequest), hash)
}

func (m *MockTx) HasRequest(hash types.Hash) (bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "HasRequest", hash)
	ret0, _ := ret[0].(bool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockTxMockRecorder) HasRequest(hash interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "HasRequest", reflect.TypeOf((*MockTx)(nil).HasRequest), hash)
}

func (m *MockTx) PutStakedFunds(origin types.Hash, target types.Hash, f *types.StakedFunds) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "PutStakedFunds", origin, target, f)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockTxMockRecorder) PutStakedFunds(origin interface{}, target interface{}, f interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PutStakedFunds", reflect.TypeOf((*MockTx)(nil).PutStakedFunds), origin, target, f)
}

func (m *MockTx) GetStakedFunds(origin types.Hash, target types.Hash) (*types.StakedFunds, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetStakedFunds", origin, target)
	ret0, _ := ret[0].(*types.StakedFunds)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockTxMockRecorder) GetStakedFunds(origin interface{}, target interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetStakedFunds", reflect.TypeOf((*MockTx)(nil).GetStakedFunds), origin, target)
}

func (m *MockTx) DeleteStakedFunds(origin types.Hash, target types.Hash) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DeleteStakedFunds", origin, target)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockTxMockRecorder) DeleteStakedFunds(origin interface{}, target interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DeleteStakedFunds", reflect.TypeOf((*MockTx)(nil).DeleteStakedFunds), origin, target)
}

func (m *MockTx) PutThawingFunds(origin types.Hash, expiration types.EpochNum, f *types.ThawingFunds) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "PutThawingFunds", origin, expiration, f)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockTxMockRecorder) PutThawingFunds(origin interface{}, expiration interface{}, f interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PutThawingFunds", reflect.TypeOf((*MockTx)(nil).PutThawingFunds), origin, expiration, f)
}

func (m *MockTx) IterThawingFunds(origin types.Hash, fn func(*types.ThawingFunds) error) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "IterThawingFunds", origin, fn)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockTxMockRecorder) IterThawingFunds(origin interface{}, fn interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "IterThawingFunds", reflect.TypeOf((*MockTx)(nil).IterThawingFunds), origin, fn)
}

func (m *MockTx) DeleteThawingFunds(origin types.Hash, expiration types.EpochNum) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DeleteThawingFunds", origin, expiration)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockTxMockRecorder) DeleteThawingFunds(origin interface{}, expiration interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DeleteThawingFunds", reflect.TypeOf((*MockTx)(nil).DeleteThawingFunds), origin, expiration)
}

func (m *MockTx) PutLiability(id types.Hash, l *types.Liability) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "PutLiability", id, l)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockTxMockRecorder) PutLiability(id interface{}, l interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PutLiability", reflect.TypeOf((*MockTx)(nil).PutLiability), id, l)
}

func (m *MockTx) DeleteLiability(id types.Hash) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DeleteLiability", id)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockTxMockRecorder) DeleteLiability(id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DeleteLiability", reflect.TypeOf((*MockTx)(nil).DeleteLiability), id)
}

func (m *MockTx) PutVotingPower(rep types.Hash, v *types.VotingPowerInfo) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "PutVotingPower", rep, v)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockTxMockRecorder) PutVotingPower(rep interface{}, v interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PutVotingPower", reflect.TypeOf((*MockTx)(nil).PutVotingPower), rep, v)
}

func (m *MockTx) GetVotingPower(rep types.Hash) (*types.VotingPowerInfo, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetVotingPower", rep)
	ret0, _ := ret[0].(*types.VotingPowerInfo)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockTxMockRecorder) GetVotingPower(rep interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetVotingPower", reflect.TypeOf((*MockTx)(nil).GetVotingPower), rep)
}

func (m *MockTx) DeleteVotingPower(rep types.Hash) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DeleteVotingPower", rep)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockTxMockRecorder) DeleteVotingPower(rep interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DeleteVotingPower", reflect.TypeOf((*MockTx)(nil).DeleteVotingPower), rep)
}

func (m *MockTx) PutCandidacy(account types.Hash, c *types.CandidacyInfo) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "PutCandidacy", account, c)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockTxMockRecorder) PutCandidacy(account interface{}, c interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PutCandidacy", reflect.TypeOf((*MockTx)(nil).PutCandidacy), account, c)
}

func (m *MockTx) GetCandidacy(account types.Hash) (*types.CandidacyInfo, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetCandidacy", account)
	ret0, _ := ret[0].(*types.CandidacyInfo)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockTxMockRecorder) GetCandidacy(account interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetCandidacy", reflect.TypeOf((*MockTx)(nil).GetCandidacy), account)
}

func (m *MockTx) PutRepresentative(account types.Hash, r *types.RepresentativeInfo) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "PutRepresentative", account, r)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockTxMockRecorder) PutRepresentative(account interface{}, r interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PutRepresentative", reflect.TypeOf((*MockTx)(nil).PutRepresentative), account, r)
}

func (m *MockTx) GetRepresentative(account types.Hash) (*types.RepresentativeInfo, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetRepresentative", account)
	ret0, _ := ret[0].(*types.RepresentativeInfo)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockTxMockRecorder) GetRepresentative(account interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetRepresentative", reflect.TypeOf((*MockTx)(nil).GetRepresentative), account)
}

func (m *MockTx) PutReward(account types.Hash, amount types.Amount) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "PutReward", account, amount)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockTxMockRecorder) PutReward(account interface{}, amount interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PutReward", reflect.TypeOf((*MockTx)(nil).PutReward), account, amount)
}

func (m *MockTx) GetReward(account types.Hash) (types.Amount, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetReward", account)
	ret0, _ := ret[0].(types.Amount)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockTxMockRecorder) GetReward(account interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetReward", reflect.TypeOf((*MockTx)(nil).GetReward), account)
}

func (m *MockTx) PutGlobalReward(epoch types.EpochNum, amount types.Amount) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "PutGlobalReward", epoch, amount)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockTxMockRecorder) PutGlobalReward(epoch interface{}, amount interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PutGlobalReward", reflect.TypeOf((*MockTx)(nil).PutGlobalReward), epoch, amount)
}

func (m *MockTx) GetGlobalReward(epoch types.EpochNum) (types.Amount, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetGlobalReward", epoch)
	ret0, _ := ret[0].(types.Amount)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockTxMockRecorder) GetGlobalReward(epoch interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetGlobalReward", reflect.TypeOf((*MockTx)(nil).GetGlobalReward), epoch)
}

func (m *MockTx) PutP2p(name string, blob []byte) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "PutP2p", name, blob)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockTxMockRecorder) PutP2p(name interface{}, blob interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PutP2p", reflect.TypeOf((*MockTx)(nil).PutP2p), name, blob)
}

func (m *MockTx) GetP2p(name string) ([]byte, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetP2p", name)
	ret0, _ := ret[0].([]byte)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockTxMockRecorder) GetP2p(name interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetP2p", reflect.TypeOf((*MockTx)(nil).GetP2p), name)
}

func (m *MockTx) SetMetaVersion(v int) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SetMetaVersion", v)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockTxMockRecorder) SetMetaVersion(v interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetMetaVersion", reflect.TypeOf((*MockTx)(nil).SetMetaVersion), v)
}

func (m *MockTx) GetMetaVersion() (int, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetMetaVersion")
	ret0, _ := ret[0].(int)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockTxMockRecorder) GetMetaVersion() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetMetaVersion", reflect.TypeOf((*MockTx)(nil).GetMetaVersion))
}

func (m *MockTx) Commit() error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Commit")
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockTxMockRecorder) Commit() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Commit", reflect.TypeOf((*MockTx)(nil).Commit))
}

func (m *MockTx) Rollback() error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Rollback")
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockTxMockRecorder) Rollback() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Rollback", reflect.TypeOf((*MockTx)(nil).Rollback))
}

