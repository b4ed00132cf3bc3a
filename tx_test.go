package peerfund

import (
	"testing"

	"github.com/iov-one/peerfund/errors"
	"github.com/stretchr/testify/assert"
)

type demoMsg struct {
	Num int
	err error
}

func (demoMsg) Path() string               { return "demo/msg" }
func (m demoMsg) Validate() error          { return m.err }
func (demoMsg) Marshal() ([]byte, error)   { return []byte("foo"), nil }
func (*demoMsg) Unmarshal(bz []byte) error { return nil }

var _ Msg = (*demoMsg)(nil)

type otherMsg struct {
	demoMsg
}

type demoTx struct {
	msg Msg
	err error
}

func (tx demoTx) GetMsg() (Msg, error) {
	return tx.msg, tx.err
}

func TestLoadMsg(t *testing.T) {
	cases := map[string]struct {
		tx      Tx
		dest    interface{}
		wantErr *errors.Error
		wantNum int
	}{
		"success": {
			tx:      demoTx{msg: &demoMsg{Num: 17}},
			dest:    &demoMsg{},
			wantNum: 17,
		},
		"message load failure": {
			tx:      demoTx{err: errors.ErrInvalidInput},
			dest:    &demoMsg{},
			wantErr: errors.ErrInvalidInput,
		},
		"missing message": {
			tx:      demoTx{},
			dest:    &demoMsg{},
			wantErr: errors.ErrInvalidMsg,
		},
		"destination is not a pointer": {
			tx:      demoTx{msg: &demoMsg{}},
			dest:    demoMsg{},
			wantErr: errors.ErrHuman,
		},
		"destination of a different type": {
			tx:      demoTx{msg: &demoMsg{}},
			dest:    &otherMsg{},
			wantErr: errors.ErrInvalidType,
		},
		"validation failure": {
			tx:      demoTx{msg: &demoMsg{err: errors.ErrInvalidAmount}},
			dest:    &demoMsg{},
			wantErr: errors.ErrInvalidAmount,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := LoadMsg(tc.tx, tc.dest)
			if tc.wantErr != nil {
				assert.True(t, tc.wantErr.Is(err), "unexpected error: %+v", err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.wantNum, tc.dest.(*demoMsg).Num)
		})
	}
}

func TestGetPath(t *testing.T) {
	assert.Equal(t, "demo/msg", GetPath(demoTx{msg: &demoMsg{}}))
	assert.Equal(t, "(missing)", GetPath(demoTx{}))
	assert.Equal(t, "(missing)", GetPath(demoTx{err: errors.ErrInvalidInput}))
}
