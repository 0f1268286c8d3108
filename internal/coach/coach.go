package coach

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/runpro/runpro/internal/markdown"
	"github.com/runpro/runpro/internal/model"
	"github.com/runpro/runpro/internal/observability"
)

// NoKeyMessage is returned by every text endpoint while no API key is set.
const NoKeyMessage = "API Key가 설정되지 않았습니다. 우측 상단 설정(⚙️) 버튼을 눌러 키를 등록해주세요."

// AnalyzeLimit is how many recent records are sent for analysis.
const AnalyzeLimit = 5

var (
	ErrNoAPIKey   = errors.New("coach API key not set")
	ErrPlanFailed = errors.New("training plan generation failed")
	ErrBadPlan    = errors.New("generated plan is invalid")
)

var jsonArray = regexp.MustCompile(`\[[\s\S]*\]`)

// Reply is a coach answer. Fallback marks one of the fixed replies used when
// the model could not be reached or returned nothing.
type Reply struct {
	Text     string `json:"text"`
	HTML     string `json:"html"`
	Fallback bool   `json:"fallback"`
}

// Insights bundles the three advice replies shown together.
type Insights struct {
	Analysis Reply `json:"analysis"`
	Recovery Reply `json:"recovery"`
	Gear     Reply `json:"gear"`
}

// Coach sends training data to the model. It never returns model errors from
// the text endpoints; they become fixed fallback replies.
type Coach struct {
	mu      sync.RWMutex
	gen     Generator
	factory Factory
	md      *markdown.Parser
	prompts map[string]*prompt
}

func New(factory Factory, md *markdown.Parser) (*Coach, error) {
	prompts, err := loadPrompts(md)
	if err != nil {
		return nil, fmt.Errorf("failed to load prompts: %w", err)
	}
	return &Coach{
		factory: factory,
		md:      md,
		prompts: prompts,
	}, nil
}

// SetAPIKey replaces the generator. An empty key disables the coach.
func (c *Coach) SetAPIKey(ctx context.Context, apiKey string) error {
	gen, err := c.NewGenerator(ctx, apiKey)
	if err != nil {
		return err
	}
	c.Install(gen)
	return nil
}

// NewGenerator builds a generator for apiKey without installing it. An
// empty key gives a nil generator.
func (c *Coach) NewGenerator(ctx context.Context, apiKey string) (Generator, error) {
	if apiKey == "" {
		return nil, nil
	}
	return c.factory(ctx, apiKey)
}

// Install swaps in gen. A nil gen disables the coach.
func (c *Coach) Install(gen Generator) {
	c.mu.Lock()
	c.gen = gen
	c.mu.Unlock()
}

func (c *Coach) Enabled() bool {
	return c.generator() != nil
}

func (c *Coach) generator() Generator {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gen
}

// TestConnection tries a minimal request with apiKey without installing it.
func (c *Coach) TestConnection(ctx context.Context, apiKey string) bool {
	gen, err := c.factory(ctx, apiKey)
	if err == nil {
		_, err = gen.Generate(ctx, "Test connection", nil)
	}
	if err != nil {
		slog.Warn("coach connection test failed", "error", err)
		observability.RecordCoachCall("test", "error")
		return false
	}
	observability.RecordCoachCall("test", "ok")
	return true
}

// Analyze reviews the most recent records. records must be newest first.
func (c *Coach) Analyze(ctx context.Context, records []model.Record) Reply {
	if len(records) > AnalyzeLimit {
		records = records[:AnalyzeLimit]
	}
	data, err := json.Marshal(records)
	if err != nil {
		data = []byte("[]")
	}
	return c.text(ctx, "analyze", len(records) > 0, map[string]any{"Records": string(data)})
}

func (c *Coach) Ask(ctx context.Context, question string) Reply {
	question = strings.TrimSpace(question)
	return c.text(ctx, "ask", question != "", map[string]any{"Question": question})
}

// RecoveryAdvice suggests food and recovery after rec. A nil rec gets the
// no-data reply.
func (c *Coach) RecoveryAdvice(ctx context.Context, rec *model.Record) Reply {
	return c.text(ctx, "recovery", rec != nil, map[string]any{"Record": rec})
}

func (c *Coach) GearAdvice(ctx context.Context, shoes []model.Shoe) Reply {
	data, err := json.Marshal(shoes)
	if err != nil {
		data = []byte("[]")
	}
	return c.text(ctx, "gear", len(shoes) > 0, map[string]any{"Shoes": string(data)})
}

// Insights runs analysis, recovery and gear advice concurrently. Each falls
// back on its own.
func (c *Coach) Insights(ctx context.Context, records []model.Record, shoes []model.Shoe) Insights {
	var out Insights
	var latest *model.Record
	if len(records) > 0 {
		latest = &records[0]
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		out.Analysis = c.Analyze(gctx, records)
		return nil
	})
	g.Go(func() error {
		out.Recovery = c.RecoveryAdvice(gctx, latest)
		return nil
	})
	g.Go(func() error {
		out.Gear = c.GearAdvice(gctx, shoes)
		return nil
	})
	_ = g.Wait()

	return out
}

// GeneratePlan asks for a weeks-long plan toward goal with freq runs a week.
// Unlike the text endpoints it reports failure as an error.
func (c *Coach) GeneratePlan(ctx context.Context, weeks int, goal string, freq int) ([]model.TrainingPlanItem, error) {
	gen := c.generator()
	if gen == nil {
		return nil, ErrNoAPIKey
	}

	p := c.prompts["plan"]
	prompt, err := p.render(map[string]any{"Weeks": weeks, "Goal": goal, "Frequency": freq})
	if err != nil {
		return nil, fmt.Errorf("failed to render plan prompt: %w", err)
	}

	text, err := gen.Generate(ctx, prompt, planSchema)
	if err != nil {
		observability.RecordCoachCall("plan", "error")
		slog.Error("coach plan generation failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrPlanFailed, err)
	}

	items, err := parsePlan(text)
	if err != nil {
		observability.RecordCoachCall("plan", "error")
		slog.Error("coach plan unreadable", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrPlanFailed, err)
	}

	observability.RecordCoachCall("plan", "ok")
	return items, nil
}

// parsePlan reads the first bracketed array in text. Valid JSON that is not
// an array yields an empty plan.
func parsePlan(text string) ([]model.TrainingPlanItem, error) {
	if strings.TrimSpace(text) == "" {
		text = "[]"
	}
	if m := jsonArray.FindString(text); m != "" {
		text = m
	}

	var raw json.RawMessage
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, err
	}
	if trimmed := strings.TrimSpace(string(raw)); !strings.HasPrefix(trimmed, "[") {
		return []model.TrainingPlanItem{}, nil
	}

	var items []model.TrainingPlanItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	for i, item := range items {
		if !model.ValidGoalType(item.Type) {
			return nil, fmt.Errorf("%w: item %d has type %q", ErrBadPlan, i, item.Type)
		}
		if item.DayOffset < 0 {
			return nil, fmt.Errorf("%w: item %d has negative day offset", ErrBadPlan, i)
		}
	}
	if items == nil {
		items = []model.TrainingPlanItem{}
	}
	return items, nil
}

// text runs one text endpoint. hasData false short-circuits to the no-data
// reply without calling the model.
func (c *Coach) text(ctx context.Context, op string, hasData bool, data any) Reply {
	gen := c.generator()
	if gen == nil {
		observability.RecordCoachCall(op, "fallback")
		return c.fallback(NoKeyMessage)
	}

	p := c.prompts[op]
	if !hasData {
		observability.RecordCoachCall(op, "fallback")
		return c.fallback(p.nodata)
	}

	prompt, err := p.render(data)
	if err != nil {
		slog.Error("failed to render coach prompt", "error", err, "operation", op)
		observability.RecordCoachCall(op, "error")
		return c.fallback(p.failure)
	}

	text, err := gen.Generate(ctx, prompt, nil)
	if err != nil {
		slog.Error("coach request failed", "error", err, "operation", op)
		observability.RecordCoachCall(op, "error")
		return c.fallback(p.failure)
	}
	if strings.TrimSpace(text) == "" {
		observability.RecordCoachCall(op, "fallback")
		return c.fallback(p.empty)
	}

	observability.RecordCoachCall(op, "ok")
	return c.reply(text, false)
}

func (c *Coach) fallback(text string) Reply {
	return c.reply(text, true)
}

func (c *Coach) reply(text string, fallback bool) Reply {
	html, err := c.md.Render(text)
	if err != nil {
		slog.Warn("failed to render coach reply", "error", err)
		html = ""
	}
	return Reply{Text: text, HTML: html, Fallback: fallback}
}
