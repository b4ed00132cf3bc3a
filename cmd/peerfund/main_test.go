package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/iov-one/peerfund"
	"github.com/iov-one/peerfund/errors"
	"github.com/iov-one/peerfund/fundtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(args ...string) (string, error) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOutput(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t testing.TB, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, ioutil.WriteFile(path, []byte(content), 0600))
	return path
}

func TestCommands(t *testing.T) {
	home, err := ioutil.TempDir("", "peerfund-cli")
	require.NoError(t, err)
	defer os.RemoveAll(home)

	admin := fundtest.NewCondition()
	donor := fundtest.NewCondition()
	researcher := fundtest.NewCondition()

	genesis := writeFile(t, home, "genesis.json", fmt.Sprintf(`{
		"chain_id": "peerfund-cli",
		"app_state": {
			"conf": {"registry": {"admin": %q}},
			"cash": [{"address": %q, "balance": 1000}]
		}
	}`, admin.Address(), donor.Address()))

	common := []string{"--home", home, "--log-level", "none"}
	cmd := func(args ...string) (string, error) {
		return run(append(args, common...)...)
	}

	out, err := cmd("init", "--genesis", genesis)
	require.NoError(t, err)
	assert.Contains(t, out, "Initialized chain peerfund-cli at height 1")

	_, err = cmd("init", "--genesis", genesis)
	assert.True(t, errors.ErrInvalidState.Is(err), "%+v", err)

	deposit := writeFile(t, home, "deposit.json", `{"amount": 250}`)
	out, err = cmd("exec", "--path", "fund/deposit", "--signer", donor.String(), deposit)
	require.NoError(t, err)
	var res execResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.EqualValues(t, 2, res.Height)
	require.Len(t, res.Events, 1)
	assert.Equal(t, "funds-deposited", res.Events[0].Type)
	assert.Equal(t, []attribute{
		{Key: "contributor", Value: donor.Address().String()},
		{Key: "amount", Value: "250"},
	}, res.Events[0].Attributes)

	submit := writeFile(t, home, "submit.json", `{"id": "p1", "title": "Coral reefs", "budget": 100}`)
	_, err = cmd("exec", "--path", "proposal/submit", "--signer", researcher.String(), submit)
	require.NoError(t, err)

	// rejected deliveries are not committed
	_, err = cmd("exec", "--path", "proposal/submit", "--signer", researcher.String(), submit)
	assert.True(t, errors.ErrDuplicate.Is(err), "%+v", err)
	_, err = cmd("exec", "--path", "fund/withdraw", "--signer", donor.String(), deposit)
	assert.True(t, errors.ErrNotFound.Is(err), "%+v", err)

	out, err = cmd("query", "pool")
	require.NoError(t, err)
	var pool balanceView
	require.NoError(t, json.Unmarshal([]byte(out), &pool))
	assert.EqualValues(t, 250, pool.Balance)

	out, err = cmd("query", "wallet", donor.Address().String())
	require.NoError(t, err)
	var wallet balanceView
	require.NoError(t, json.Unmarshal([]byte(out), &wallet))
	assert.EqualValues(t, 750, wallet.Balance)

	out, err = cmd("query", "proposals")
	require.NoError(t, err)
	var props []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &props))
	require.Len(t, props, 1)
	assert.Equal(t, "p1", props[0]["id"])
	assert.Equal(t, researcher.Address().String(), props[0]["beneficiary"])

	_, err = cmd("query", "proposal", "p2")
	assert.True(t, errors.ErrNotFound.Is(err), "%+v", err)

	out, err = cmd("query", "reviews", researcher.Address().String())
	require.NoError(t, err)
	assert.Equal(t, "[]\n", out)

	_, err = cmd("query", "pool", "--chain-id", "other-chain")
	assert.True(t, errors.ErrInvalidState.Is(err), "%+v", err)
}

func TestExecRequiresInit(t *testing.T) {
	home, err := ioutil.TempDir("", "peerfund-cli")
	require.NoError(t, err)
	defer os.RemoveAll(home)

	deposit := writeFile(t, home, "deposit.json", `{"amount": 1}`)
	_, err = run("exec", "--home", home, "--log-level", "none",
		"--path", "fund/deposit", "--signer", fundtest.NewCondition().String(), deposit)
	assert.True(t, errors.ErrInvalidState.Is(err), "%+v", err)
}

func TestConfigFile(t *testing.T) {
	home, err := ioutil.TempDir("", "peerfund-cli")
	require.NoError(t, err)
	defer os.RemoveAll(home)

	writeFile(t, home, configFile, `log_format = "xml"`)
	_, err = run("query", "pool", "--home", home)
	assert.True(t, errors.ErrInvalidInput.Is(err), "%+v", err)

	// flags take precedence over the file
	_, err = run("query", "pool", "--home", home, "--log-format", "json", "--log-level", "none")
	assert.NoError(t, err)
}

func TestVersion(t *testing.T) {
	out, err := run("version")
	require.NoError(t, err)
	assert.Equal(t, peerfund.Version()+"\n", out)
}
