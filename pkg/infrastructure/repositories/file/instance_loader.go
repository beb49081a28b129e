// Package file loads wave-picking instances from the plain-text challenge
// format and writes solutions back out.
//
// Instance format (whitespace-separated integers):
//
//	o i a                  header: order count, item count, aisle count
//	k item qty ... (o lines, one per order: k sparse item/qty pairs)
//	k item qty ... (a lines, one per aisle)
//	LB UB                  wave size bounds
//
// Solution format:
//
//	n                      selected order count
//	orderID                (n lines)
//	m                      visited aisle count
//	aisleID                (m lines)
package file

import (
	"bufio"
	"fmt"
	"os"

	"github.com/vroliveira/wavepick/pkg/domain/entities"
)

// Loader reads instances from disk.
type Loader struct{}

// NewLoader creates a new instance loader.
func NewLoader() *Loader {
	return &Loader{}
}

// LoadInstance parses the file and returns a validated instance.
func (l *Loader) LoadInstance(filename string) (*entities.Instance, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open instance file %s: %w", filename, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	scanner.Split(bufio.ScanWords)

	next := func() (int, error) {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return 0, err
			}
			return 0, fmt.Errorf("unexpected end of file")
		}
		var v int
		if _, err := fmt.Sscanf(scanner.Text(), "%d", &v); err != nil {
			return 0, fmt.Errorf("expected integer, got %q", scanner.Text())
		}
		return v, nil
	}

	numOrders, err := next()
	if err != nil {
		return nil, fmt.Errorf("reading order count: %w", err)
	}
	nItems, err := next()
	if err != nil {
		return nil, fmt.Errorf("reading item count: %w", err)
	}
	numAisles, err := next()
	if err != nil {
		return nil, fmt.Errorf("reading aisle count: %w", err)
	}

	readSparse := func(kind string, idx int) (map[int]int, error) {
		k, err := next()
		if err != nil {
			return nil, fmt.Errorf("reading %s %d entry count: %w", kind, idx, err)
		}
		entries := make(map[int]int, k)
		for j := 0; j < k; j++ {
			item, err := next()
			if err != nil {
				return nil, fmt.Errorf("reading %s %d item: %w", kind, idx, err)
			}
			qty, err := next()
			if err != nil {
				return nil, fmt.Errorf("reading %s %d quantity: %w", kind, idx, err)
			}
			entries[item] = qty
		}
		return entries, nil
	}

	orders := make([]entities.Order, numOrders)
	for o := 0; o < numOrders; o++ {
		entries, err := readSparse("order", o)
		if err != nil {
			return nil, err
		}
		orders[o] = entries
	}

	aisles := make([]entities.Aisle, numAisles)
	for a := 0; a < numAisles; a++ {
		entries, err := readSparse("aisle", a)
		if err != nil {
			return nil, err
		}
		aisles[a] = entries
	}

	waveSizeLB, err := next()
	if err != nil {
		return nil, fmt.Errorf("reading wave size lower bound: %w", err)
	}
	waveSizeUB, err := next()
	if err != nil {
		return nil, fmt.Errorf("reading wave size upper bound: %w", err)
	}

	inst, err := entities.NewInstance(orders, aisles, nItems, waveSizeLB, waveSizeUB)
	if err != nil {
		return nil, fmt.Errorf("instance %s is invalid: %w", filename, err)
	}
	return inst, nil
}

// WriteSolution writes the solution in the challenge output format, ids in
// ascending order.
func WriteSolution(filename string, sol *entities.Solution) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create solution file %s: %w", filename, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, sol.NumOrders())
	for _, id := range sol.OrderIDs() {
		fmt.Fprintln(w, id)
	}
	fmt.Fprintln(w, sol.NumAisles())
	for _, id := range sol.AisleIDs() {
		fmt.Fprintln(w, id)
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write solution file %s: %w", filename, err)
	}
	return nil
}
