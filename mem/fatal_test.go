package mem

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

// Test_Fatal_MappingFailureReachesHook verifies mapping failure is reported to
// OnFatal and never returned.
func Test_Fatal_MappingFailureReachesHook(t *testing.T) {
	for _, n := range []int{16, 1000, 1 << 20} {
		m := &countingMapper{failAt: 1}
		var hooked error
		cfg := ConfigStandard
		cfg.Mapper = m
		cfg.OnFatal = func(err error) { hooked = err }
		a, err := New(&cfg)
		require.NoError(t, err)

		requireFatal(t, ErrMapFailed, func() { a.Alloc(n) })
		require.ErrorIs(t, hooked, ErrMapFailed)
		require.ErrorIs(t, hooked, errInjected)
	}
}

// Test_Fatal_HookThatReturnsStillHalts verifies the arena never continues past
// a fatal error.
func Test_Fatal_HookThatReturnsStillHalts(t *testing.T) {
	calls := 0
	cfg := ConfigCompact
	cfg.Mapper = &countingMapper{failAt: 1}
	cfg.OnFatal = func(error) { calls++ }
	a, err := New(&cfg)
	require.NoError(t, err)

	require.Panics(t, func() { a.Alloc(8) })
	require.Equal(t, 1, calls)
}

// Test_Fatal_ArenaExhausted verifies growth past the table size is fatal.
func Test_Fatal_ArenaExhausted(t *testing.T) {
	cfg := ConfigCompact
	cfg.MaxExponent = 14 // buddy growths of 4 KiB and 8 KiB, nothing more
	a, _ := newTestArena(t, cfg)

	for i := 0; i < 3; i++ {
		require.NotNil(t, a.Alloc(4000)) // 4 KiB class
	}
	require.Equal(t, 2, a.Stats().MediumGrowths)
	requireFatal(t, ErrArenaExhausted, func() { a.Alloc(4000) })
}

// Test_Fatal_EarlierBlocksSurvive verifies a failed growth leaves blocks
// allocated before it intact.
func Test_Fatal_EarlierBlocksSurvive(t *testing.T) {
	a, m := newTestArena(t, ConfigCompact)
	b := a.Alloc(20)
	fill(b, 3)

	m.failAt = m.maps + 1
	requireFatal(t, ErrMapFailed, func() { a.Alloc(ConfigCompact.LargeMin) })
	requirePattern(t, b, 3)
	require.NoError(t, a.Verify())
}

// Test_Fatal_DefaultHookLogsAndExits verifies the default hook reports through
// slog.Default and exits with status 2.
func Test_Fatal_DefaultHookLogsAndExits(t *testing.T) {
	var logs bytes.Buffer
	prevLogger, prevExit := slog.Default(), osExit
	t.Cleanup(func() {
		slog.SetDefault(prevLogger)
		osExit = prevExit
	})
	slog.SetDefault(slog.New(slog.NewTextHandler(&logs, nil)))
	code := -1
	osExit = func(c int) { code = c }

	cfg := ConfigCompact
	cfg.Mapper = &countingMapper{failAt: 1}
	a, err := New(&cfg)
	require.NoError(t, err)

	requireFatal(t, ErrMapFailed, func() { a.Alloc(8) })
	require.Equal(t, 2, code)
	require.Contains(t, logs.String(), "memkit: fatal allocator error")
	require.Contains(t, logs.String(), "small growth")
}
