package billing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompensationLog_RollsBackNewestFirst(t *testing.T) {
	var order []string
	var log compensationLog
	for _, name := range []string{"a", "b", "c"} {
		log.record(name, func(context.Context) error {
			order = append(order, name)
			return nil
		})
	}

	require.NoError(t, log.rollback(context.Background()))
	assert.Equal(t, []string{"c", "b", "a"}, order)
	assert.Zero(t, log.len())
}

func TestCompensationLog_ContinuesPastFailures(t *testing.T) {
	boom := errors.New("boom")
	var ran []string
	var log compensationLog
	log.record("restock 1", func(context.Context) error {
		ran = append(ran, "restock 1")
		return nil
	})
	log.record("restock 2", func(context.Context) error {
		ran = append(ran, "restock 2")
		return boom
	})

	err := log.rollback(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "compensate restock 2")
	assert.Equal(t, []string{"restock 2", "restock 1"}, ran)
}

func TestCompensationLog_EmptyIsNoop(t *testing.T) {
	var log compensationLog
	assert.NoError(t, log.rollback(context.Background()))
}
