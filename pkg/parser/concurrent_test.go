package parser

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func collect(errChan chan error) []error {
	close(errChan)
	var errs []error
	for err := range errChan {
		errs = append(errs, err)
	}
	return errs
}

// TestConcurrentParsing checks that many goroutines can share one pool.
func TestConcurrentParsing(t *testing.T) {
	manager := newTestManager(t)

	const numGoroutines = 100
	var wg sync.WaitGroup
	wg.Add(numGoroutines)
	errChan := make(chan error, numGoroutines)

	source := []byte(decoratedClass)
	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			tree, err := manager.Parse(source, LanguageTypeScript, false)
			if err != nil {
				errChan <- err
				return
			}
			tree.Close()
		}()
	}
	wg.Wait()

	assert.Empty(t, collect(errChan), "No errors should occur during concurrent parsing")

	stats := manager.GetStats()
	maxPoolSize := getDefaultPoolSize()
	assert.LessOrEqual(t, stats.ParsersCreated, maxPoolSize, "Should create at most %d parsers in pool", maxPoolSize)
	assert.GreaterOrEqual(t, stats.ParsersCreated, 1)
	assert.Equal(t, numGoroutines, stats.ParsesCalled)
}

// TestConcurrentPoolOfOne forces every caller through a single parser.
func TestConcurrentPoolOfOne(t *testing.T) {
	manager := NewParserManagerWithPoolSize(nil, 1)
	defer manager.Close()

	const numGoroutines = 30
	var wg sync.WaitGroup
	wg.Add(numGoroutines)
	errChan := make(chan error, numGoroutines)

	start := make(chan struct{})
	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			<-start
			tree, err := manager.Parse([]byte("class A { m() {} }"), LanguageTypeScript, false)
			if err != nil {
				errChan <- err
				return
			}
			tree.Close()
		}()
	}
	close(start)
	wg.Wait()

	assert.Empty(t, collect(errChan))
	assert.Equal(t, 1, manager.GetStats().ParsersCreated)
}

// TestConcurrentTSXSwitch interleaves the TypeScript and TSX grammars.
func TestConcurrentTSXSwitch(t *testing.T) {
	manager := newTestManager(t)

	const numGoroutines = 50
	var wg sync.WaitGroup
	wg.Add(numGoroutines * 2)
	errChan := make(chan error, numGoroutines*2)

	tsSource := []byte("const x: number = 1;")
	tsxSource := []byte("const el = <div>Hello</div>;")

	parse := func(source []byte, isTSX bool) {
		defer wg.Done()
		tree, err := manager.Parse(source, LanguageTypeScript, isTSX)
		if err != nil {
			errChan <- err
			return
		}
		if tree.RootNode().HasError() {
			errChan <- assert.AnError
		}
		tree.Close()
	}

	for i := 0; i < numGoroutines; i++ {
		go parse(tsSource, false)
		go parse(tsxSource, true)
	}
	wg.Wait()

	assert.Empty(t, collect(errChan), "No errors should occur during TS/TSX concurrent parsing")
	assert.Equal(t, 2, manager.GetStats().Pools)
}

// TestRaceConditions is meant for go test -race.
func TestRaceConditions(t *testing.T) {
	manager := newTestManager(t)

	const numGoroutines = 100
	var wg sync.WaitGroup
	wg.Add(numGoroutines * 2)

	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			tree, err := manager.Parse([]byte("const x = 1;"), LanguageTypeScript, id%2 == 0)
			if err == nil {
				tree.Close()
			}
		}(i)

		go func() {
			defer wg.Done()
			_ = manager.GetStats()
		}()
	}

	wg.Wait()
}

func BenchmarkSequentialParsing(b *testing.B) {
	manager := NewParserManager(nil)
	defer manager.Close()

	source := []byte(decoratedClass)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree, err := manager.Parse(source, LanguageTypeScript, false)
		if err != nil {
			b.Fatal(err)
		}
		tree.Close()
	}
}
