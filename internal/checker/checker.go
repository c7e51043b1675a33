// Package checker orchestrates schema validation and the dataclass rule
// passes for resolved-module documents, producing one report per file.
package checker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/foundry-zero/dccheck/internal/ast"
	"github.com/foundry-zero/dccheck/internal/cache"
	"github.com/foundry-zero/dccheck/internal/logging"
	"github.com/foundry-zero/dccheck/internal/report"
	"github.com/foundry-zero/dccheck/internal/resolve"
	"github.com/foundry-zero/dccheck/internal/schema"
	"github.com/foundry-zero/dccheck/internal/semantic"
)

// Rule IDs of findings about the input rather than the Python source.
const (
	RuleInput  = "INPUT"
	RuleSchema = "SCHEMA"
)

// Version identifies the rule engine. It is part of every cache key, so a
// release never serves reports produced by an older engine.
const Version = "0.1.0"

// PassFunc builds the visitor of a semantic pass for one file. The visitors
// of all selected passes share a single traversal and report to ctx.Sink.
type PassFunc func(ctx *semantic.Context) semantic.Visitor

// CheckOptions controls which validation passes to run.
type CheckOptions struct {
	SchemaOnly bool                       // Only run JSON Schema validation, skip semantic passes.
	RuleFilter []int                      // If non-empty, only report these rule numbers.
	Strict     bool                       // Treat warnings as errors for exit-code purposes.
	Severity   map[string]report.Severity // Per-rule severity overrides, keyed by rule ID.
	Jobs       int                        // CheckFiles parallelism; 0 means one file at a time.
}

// cacheSalt describes every option that changes a report's content.
func (o CheckOptions) cacheSalt() string {
	var b strings.Builder
	fmt.Fprintf(&b, "version=%s;catalogue=", Version)
	for _, r := range semantic.Rules {
		fmt.Fprintf(&b, "%s:%s,", r.ID, r.Severity)
	}
	fmt.Fprintf(&b, ";schema-only=%t;rules=", o.SchemaOnly)
	for _, n := range o.RuleFilter {
		b.WriteString(strconv.Itoa(n))
		b.WriteByte(',')
	}
	b.WriteString(";severity=")
	keys := make([]string, 0, len(o.Severity))
	for k := range o.Severity {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "%s:%s,", k, o.Severity[k])
	}
	return b.String()
}

// passEntry binds a named semantic pass to the rule numbers it covers.
type passEntry struct {
	Name  string
	Rules []int
	Fn    PassFunc
}

// Checker orchestrates validation of .pyast.json files. A Checker is safe
// for concurrent use once all passes are registered.
type Checker struct {
	sv     *schema.SchemaValidator
	passes []passEntry
	log    *zap.SugaredLogger
	cache  *cache.Store
}

// Option configures a Checker.
type Option func(*Checker)

// WithLogger sets the diagnostic logger.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(c *Checker) { c.log = log }
}

// WithCache enables the on-disk report cache.
func WithCache(s *cache.Store) Option {
	return func(c *Checker) { c.cache = s }
}

// NewChecker creates a Checker with the embedded JSON Schema validator
// and all available semantic passes registered.
func NewChecker(opts ...Option) (*Checker, error) {
	sv, err := schema.NewSchemaValidator()
	if err != nil {
		return nil, fmt.Errorf("initialize schema validator: %w", err)
	}
	c := &Checker{sv: sv, log: logging.Nop()}
	for _, opt := range opts {
		opt(c)
	}
	registerPasses(c)
	return c, nil
}

// RegisterPass adds a semantic validation pass to the checker.
// It is typically called from registerPasses during initialization.
func (c *Checker) RegisterPass(name string, rules []int, fn PassFunc) {
	c.passes = append(c.passes, passEntry{Name: name, Rules: rules, Fn: fn})
}

// Check validates the resolved-module document at path and returns a
// report. It runs schema validation first, then semantic passes (if the
// schema is valid and SchemaOnly is not set).
func (c *Checker) Check(path string, opts CheckOptions) *report.Report {
	start := time.Now()
	r := report.NewReport(path)

	// Verify the file is accessible before attempting validation.
	if _, err := os.Stat(path); err != nil {
		r.AddFinding(report.NewError(RuleInput, fmt.Sprintf("cannot access file: %v", err),
			report.Location{File: path}))
		return r
	}
	data, err := os.ReadFile(path)
	if err != nil {
		r.AddFinding(report.NewError(RuleInput, fmt.Sprintf("failed to read file: %v", err),
			report.Location{File: path}))
		return r
	}

	key := cache.NewKey(data, opts.cacheSalt())
	if cached, err := c.cache.Load(key); err == nil {
		c.log.Debugw("cache hit", "path", path, "key", key.String())
		cached.File = path
		return cached
	} else if !errors.Is(err, cache.ErrMiss) {
		c.log.Warnw("cache read failed", "path", path, "error", err)
	}

	c.check(r, data, opts)

	if !HasInputError(r) {
		if err := c.cache.Save(key, r); err != nil {
			c.log.Warnw("cache write failed", "path", path, "error", err)
		}
	}
	c.log.Debugw("checked file",
		"path", path,
		"findings", len(r.Findings),
		"elapsed", time.Since(start))
	return r
}

func (c *Checker) check(r *report.Report, data []byte, opts CheckOptions) {
	path := r.File

	// --- Phase 1: JSON Schema validation ---
	schemaErrors := c.sv.ValidateBytes(data)
	r.SchemaValid = len(schemaErrors) == 0

	for _, se := range schemaErrors {
		rule := RuleSchema
		if se.ParseError {
			rule = RuleInput
		}
		r.AddFinding(report.NewError(rule, se.Message,
			report.Location{File: path, Pointer: se.Path}))
	}

	if !r.SchemaValid || opts.SchemaOnly {
		return
	}

	// --- Phase 2: Load AST ---
	mod, err := ast.ParseModule(data)
	if err != nil {
		r.AddFinding(report.NewError(RuleInput, fmt.Sprintf("failed to load module: %v", err),
			report.Location{File: path}))
		return
	}

	// --- Phase 3: Build resolution context ---
	sink := &semantic.FilterSink{Sink: r, Enabled: opts.RuleFilter, Severity: opts.Severity}
	ctx := resolve.New(mod).Bind(mod.File, sink)

	// --- Phase 4: Run semantic passes in one traversal ---
	visitors := make([]semantic.Visitor, 0, len(c.passes))
	for _, p := range c.passes {
		if !passMatchesFilter(p.Rules, opts.RuleFilter) {
			c.log.Debugw("skipping pass", "pass", p.Name, "path", path)
			continue
		}
		visitors = append(visitors, p.Fn(ctx))
	}
	semantic.Walk(mod, semantic.Merge(visitors...))
}

// CheckFiles checks paths concurrently, at most opts.Jobs at a time, and
// returns the reports in the order of paths. It stops early only when ctx
// is cancelled.
func (c *Checker) CheckFiles(ctx context.Context, paths []string, opts CheckOptions) ([]*report.Report, error) {
	reports := make([]*report.Report, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	jobs := opts.Jobs
	if jobs < 1 {
		jobs = 1
	}
	g.SetLimit(jobs)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			reports[i] = c.Check(path, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// HasInputError returns true if the report contains an INPUT error.
func HasInputError(r *report.Report) bool {
	return len(r.FindingsWithRule(RuleInput)) > 0
}

// passMatchesFilter returns true if any of the pass's rules are in the filter,
// or if the filter is empty (meaning run all passes).
func passMatchesFilter(passRules []int, filter []int) bool {
	if len(filter) == 0 {
		return true
	}
	for _, pr := range passRules {
		if slices.Contains(filter, pr) {
			return true
		}
	}
	return false
}

// registerPasses wires up all available semantic passes.
func registerPasses(c *Checker) {
	c.RegisterPass("dataclasses", []int{1, 2, 3, 4, 5, 6, 7}, semantic.DataclassRules)
	c.RegisterPass("access", []int{8, 9, 10}, semantic.AccessRules)
	c.RegisterPass("helpers", []int{11}, semantic.HelperCallRules)
	c.RegisterPass("namedtuple", []int{12}, semantic.NamedTupleRules)
}
