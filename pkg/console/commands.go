package console

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"

	dto "github.com/prometheus/client_model/go"

	"github.com/kgantsov/qlist/pkg/errors"
	"github.com/kgantsov/qlist/pkg/queue"
)

const randomValue = "RAND"

func commands() map[string]command {
	return map[string]command{
		"new":      {usage: "", help: "Create new queue", run: (*Console).cmdNew},
		"free":     {usage: "", help: "Delete queue", run: (*Console).cmdFree},
		"ih":       {usage: "str [n]", help: "Insert string str at head of queue n times", run: (*Console).cmdInsertHead},
		"it":       {usage: "str [n]", help: "Insert string str at tail of queue n times", run: (*Console).cmdInsertTail},
		"rh":       {usage: "[str]", help: "Remove from head of queue, optionally compare to str", run: (*Console).cmdRemoveHead},
		"rt":       {usage: "[str]", help: "Remove from tail of queue, optionally compare to str", run: (*Console).cmdRemoveTail},
		"size":     {usage: "", help: "Compute queue size", run: (*Console).cmdSize},
		"dm":       {usage: "", help: "Delete middle node in queue", run: (*Console).cmdDeleteMid},
		"dedup":    {usage: "", help: "Delete all nodes that have duplicate string", run: (*Console).cmdDeleteDup},
		"swap":     {usage: "", help: "Swap every two adjacent nodes in queue", run: (*Console).cmdSwap},
		"reverse":  {usage: "", help: "Reverse queue", run: (*Console).cmdReverse},
		"reverseK": {usage: "k", help: "Reverse the nodes of the queue k at a time", run: (*Console).cmdReverseK},
		"sort":     {usage: "[desc]", help: "Sort queue in ascending/descending order", run: (*Console).cmdSort},
		"descend":  {usage: "", help: "Remove every node with a strictly greater node to its right", run: (*Console).cmdDescend},
		"ascend":   {usage: "", help: "Remove every node with a strictly smaller node to its right", run: (*Console).cmdAscend},
		"show":     {usage: "", help: "Show queue contents", run: (*Console).cmdShow},
		"option":   {usage: "name value", help: "Set option: fail (percent), length (remove buffer size)", run: (*Console).cmdOption},
		"stats":    {usage: "", help: "Show allocation and operation counters", run: (*Console).cmdStats},
		"help":     {usage: "", help: "Show documentation", run: (*Console).cmdHelp},
		"quit":     {usage: "", help: "Exit program", run: (*Console).cmdQuit},
	}
}

func noArgs(args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("unexpected arguments %v", args)
	}
	return nil
}

func (c *Console) requireQueue() error {
	if c.queue == nil {
		return errors.ErrNoQueue
	}
	return nil
}

func (c *Console) cmdNew(args []string) error {
	if err := noArgs(args); err != nil {
		return err
	}

	c.queue.Free()
	c.queue = nil

	q, err := queue.New(queue.WithAllocator(c.tracker))
	if err != nil {
		return err
	}

	c.queue = q
	c.show()
	return nil
}

func (c *Console) cmdFree(args []string) error {
	if err := noArgs(args); err != nil {
		return err
	}

	c.queue.Free()
	c.queue = nil
	c.show()

	if live := c.tracker.Stats().LiveBlocks; live != 0 {
		return fmt.Errorf("freed queue, but %d blocks are still allocated", live)
	}
	return nil
}

func (c *Console) insert(args []string, insert func(q *queue.Queue, s string) bool) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("need a string and an optional count")
	}
	if err := c.requireQueue(); err != nil {
		return err
	}

	count := 1
	if len(args) == 2 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid count %q", args[1])
		}
		count = n
	}

	defer c.show()
	for i := 0; i < count; i++ {
		value := args[0]
		if value == randomValue {
			value = c.randomString()
		}

		if !insert(c.queue, value) {
			return fmt.Errorf("insertion of %q failed", value)
		}
	}

	return nil
}

func (c *Console) cmdInsertHead(args []string) error {
	return c.insert(args, (*queue.Queue).InsertHead)
}

func (c *Console) cmdInsertTail(args []string) error {
	return c.insert(args, (*queue.Queue).InsertTail)
}

func cString(buf []byte) string {
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		return string(buf[:i])
	}
	return string(buf)
}

func (c *Console) remove(args []string, remove func(q *queue.Queue, buf []byte) *queue.Element) error {
	if len(args) > 1 {
		return fmt.Errorf("need at most one string to compare with")
	}
	if err := c.requireQueue(); err != nil {
		return err
	}

	buf := make([]byte, c.stringLength)
	e := remove(c.queue, buf)
	if e == nil {
		return errors.ErrEmptyQueue
	}

	removed := cString(buf)
	if err := e.Release(); err != nil {
		return err
	}

	c.printf("Removed %s from queue\n", removed)
	c.show()

	if len(args) == 1 && args[0] != removed {
		return fmt.Errorf("removed value %s does not match expected value %s", removed, args[0])
	}
	return nil
}

func (c *Console) cmdRemoveHead(args []string) error {
	return c.remove(args, (*queue.Queue).RemoveHead)
}

func (c *Console) cmdRemoveTail(args []string) error {
	return c.remove(args, (*queue.Queue).RemoveTail)
}

func (c *Console) cmdSize(args []string) error {
	if err := noArgs(args); err != nil {
		return err
	}

	c.printf("Queue size = %d\n", c.queue.Size())
	return nil
}

func (c *Console) cmdDeleteMid(args []string) error {
	if err := noArgs(args); err != nil {
		return err
	}
	if err := c.requireQueue(); err != nil {
		return err
	}

	defer c.show()
	if !c.queue.DeleteMid() {
		return errors.ErrEmptyQueue
	}
	return nil
}

func (c *Console) cmdDeleteDup(args []string) error {
	if err := noArgs(args); err != nil {
		return err
	}
	if err := c.requireQueue(); err != nil {
		return err
	}

	defer c.show()
	if !c.queue.DeleteDup() {
		return fmt.Errorf("deleting duplicates failed")
	}
	return nil
}

func (c *Console) relink(args []string, op func(q *queue.Queue)) error {
	if err := noArgs(args); err != nil {
		return err
	}
	if err := c.requireQueue(); err != nil {
		return err
	}

	op(c.queue)
	c.show()
	return nil
}

func (c *Console) cmdSwap(args []string) error {
	return c.relink(args, (*queue.Queue).Swap)
}

func (c *Console) cmdReverse(args []string) error {
	return c.relink(args, (*queue.Queue).Reverse)
}

func (c *Console) cmdReverseK(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("need the group size")
	}
	k, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid group size %q", args[0])
	}

	return c.relink(nil, func(q *queue.Queue) { q.ReverseK(k) })
}

func (c *Console) cmdSort(args []string) error {
	descending := len(args) == 1 && args[0] == "desc"
	if len(args) > 1 || len(args) == 1 && !descending {
		return fmt.Errorf("unexpected arguments %v", args)
	}
	if err := c.requireQueue(); err != nil {
		return err
	}

	if descending {
		c.queue.SortDescending()
	} else {
		c.queue.Sort()
	}
	c.show()

	if !c.queue.IsSorted(descending) {
		return fmt.Errorf("queue is not sorted")
	}
	return nil
}

func (c *Console) cmdDescend(args []string) error {
	return c.relink(args, func(q *queue.Queue) { q.Descend() })
}

func (c *Console) cmdAscend(args []string) error {
	return c.relink(args, func(q *queue.Queue) { q.Ascend() })
}

func (c *Console) cmdShow(args []string) error {
	if err := noArgs(args); err != nil {
		return err
	}

	c.show()
	return nil
}

func (c *Console) cmdOption(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("need an option name and a value")
	}

	value, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid value %q for option %s", args[1], args[0])
	}

	switch args[0] {
	case "fail":
		return c.tracker.SetFailProbability(value)
	case "length":
		if value < 1 {
			return fmt.Errorf("length must be positive")
		}
		c.stringLength = value
		return nil
	default:
		return fmt.Errorf("unknown option %q", args[0])
	}
}

func (c *Console) cmdStats(args []string) error {
	if err := noArgs(args); err != nil {
		return err
	}

	stats := c.tracker.Stats()
	c.printf(
		"allocations=%d releases=%d failures=%d invalid_releases=%d live_blocks=%d live_bytes=%d\n",
		stats.Allocations,
		stats.Releases,
		stats.Failures,
		stats.InvalidReleases,
		stats.LiveBlocks,
		stats.LiveBytes,
	)

	if c.gatherer == nil {
		return nil
	}

	families, err := c.gatherer.Gather()
	if err != nil {
		return err
	}

	for _, family := range families {
		for _, metric := range family.GetMetric() {
			c.printf("%s%s %g\n", family.GetName(), labels(metric), metricValue(family.GetType(), metric))
		}
	}

	return nil
}

func labels(metric *dto.Metric) string {
	pairs := metric.GetLabel()
	if len(pairs) == 0 {
		return ""
	}

	parts := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		parts = append(parts, fmt.Sprintf("%s=%q", pair.GetName(), pair.GetValue()))
	}
	sort.Strings(parts)

	return "{" + strings.Join(parts, ",") + "}"
}

func metricValue(metricType dto.MetricType, metric *dto.Metric) float64 {
	switch metricType {
	case dto.MetricType_COUNTER:
		return metric.GetCounter().GetValue()
	case dto.MetricType_GAUGE:
		return metric.GetGauge().GetValue()
	default:
		return metric.GetUntyped().GetValue()
	}
}

func (c *Console) cmdHelp(args []string) error {
	c.help()
	return nil
}

func (c *Console) cmdQuit(args []string) error {
	c.quit = true
	return nil
}
