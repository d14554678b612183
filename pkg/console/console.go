package console

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"github.com/kgantsov/qlist/pkg/alloc"
	"github.com/kgantsov/qlist/pkg/metrics"
	"github.com/kgantsov/qlist/pkg/queue"
)

const defaultStringLength = 1024

type command struct {
	usage string
	help  string
	run   func(c *Console, args []string) error
}

// Console interprets textual commands against a single queue, the way a test
// script drives it. Failed commands are reported and counted, they never
// stop the script.
type Console struct {
	out          io.Writer
	echo         bool
	tracker      *alloc.Tracker
	metrics      *metrics.PrometheusMetrics
	gatherer     prometheus.Gatherer
	rnd          *rand.Rand
	stringLength int

	queue    *queue.Queue
	failures int
	quit     bool
	commands map[string]command
}

type Option func(*Console)

func WithOutput(w io.Writer) Option {
	return func(c *Console) {
		c.out = w
	}
}

// WithEcho prints every command before running it.
func WithEcho(echo bool) Option {
	return func(c *Console) {
		c.echo = echo
	}
}

func WithTracker(tracker *alloc.Tracker) Option {
	return func(c *Console) {
		c.tracker = tracker
	}
}

func WithMetrics(m *metrics.PrometheusMetrics, gatherer prometheus.Gatherer) Option {
	return func(c *Console) {
		c.metrics = m
		c.gatherer = gatherer
	}
}

func WithSeed(seed int64) Option {
	return func(c *Console) {
		c.rnd = rand.New(rand.NewSource(seed))
	}
}

func WithStringLength(n int) Option {
	return func(c *Console) {
		c.stringLength = n
	}
}

func New(opts ...Option) *Console {
	c := &Console{
		out:          io.Discard,
		rnd:          rand.New(rand.NewSource(time.Now().UnixNano())),
		stringLength: defaultStringLength,
		commands:     commands(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.tracker == nil {
		c.tracker = alloc.NewTracker(alloc.WithSeed(c.rnd.Int63()))
	}

	return c
}

// Failures returns the number of commands that failed so far.
func (c *Console) Failures() int {
	return c.failures
}

func (c *Console) Queue() *queue.Queue {
	return c.queue
}

func (c *Console) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, format, args...)
}

// Execute runs a single command line. Empty lines and lines starting with #
// are ignored.
func (c *Console) Execute(line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}

	if c.echo {
		c.printf("cmd> %s\n", line)
	}

	fields := strings.Fields(line)
	name, args := fields[0], fields[1:]

	cmd, ok := c.commands[name]
	if !ok {
		return c.fail(name, fmt.Errorf("unknown command %q", name))
	}

	log.Debug().Str("command", name).Strs("args", args).Msg("Executing command")

	if c.metrics != nil {
		c.metrics.OperationsTotal.WithLabelValues(name).Inc()
	}

	if err := cmd.run(c, args); err != nil {
		return c.fail(name, err)
	}

	return nil
}

func (c *Console) fail(name string, err error) error {
	c.failures++
	log.Error().Err(err).Str("command", name).Msg("Command failed")
	c.printf("ERROR: %s\n", err)

	return err
}

// Run executes commands line by line until the input ends or quit is seen.
func (c *Console) Run(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for !c.quit && scanner.Scan() {
		// failures are counted and reported by Execute, the script goes on
		_ = c.Execute(scanner.Text())
	}

	return scanner.Err()
}

// Close frees the current queue and reports blocks that were never
// released.
func (c *Console) Close() error {
	c.queue.Free()
	c.queue = nil

	if live := c.tracker.Stats().LiveBlocks; live != 0 {
		return c.fail("close", fmt.Errorf("%d blocks still allocated", live))
	}

	return nil
}

func (c *Console) randomString() string {
	const letters = "abcdefghijklmnopqrstuvwxyz"

	n := 5 + c.rnd.Intn(6)
	var sb strings.Builder
	for i := 0; i < n; i++ {
		sb.WriteByte(letters[c.rnd.Intn(len(letters))])
	}

	return sb.String()
}

func (c *Console) show() {
	if c.queue == nil {
		c.printf("q = NULL\n")
		return
	}

	c.printf("q = [%s]\n", strings.Join(c.queue.Values(), " "))
}

func (c *Console) help() {
	names := make([]string, 0, len(c.commands))
	for name := range c.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		cmd := c.commands[name]
		c.printf("  %-10s %-16s | %s\n", name, cmd.usage, cmd.help)
	}
}
