// Package pipeline sequences the provider fetches of one token query.
//
// A single control loop (Run) owns all state. Fetches run on their own
// goroutines and post results back to the loop tagged with the generation
// that started them; results of a superseded generation are dropped.
//
// Stage order: lookup → creator trades → creator history → smart money →
// social → done. Only a lookup failure ends a generation early.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"solana-token-scope/internal/activity"
	"solana-token-scope/internal/address"
	"solana-token-scope/internal/domain"
	"solana-token-scope/internal/gateway"
	"solana-token-scope/internal/logging"
	"solana-token-scope/internal/observability"
	"solana-token-scope/internal/smartmoney"
	"solana-token-scope/internal/view"
)

// Options for creating a Controller.
type Options struct {
	// Required providers
	Registry     gateway.TokenRegistry
	Trades       gateway.CreatorTradeSource
	History      gateway.CreatorHistorySource
	Transactions gateway.TransactionSource
	Social       gateway.SocialSource

	Activity     *activity.Log      // nil creates a private log
	Listener     func(Event)        // called on the control loop; must not block
	Logger       logrus.FieldLogger // nil discards
	Now          func() time.Time   // nil uses time.Now
	HistoryLimit int                // provider page size, for "N+" counts
}

type stageResult struct {
	gen   Generation
	stage Stage
	value interface{}
	err   error
}

// Controller is the stage pipeline. Create with New, then start Run.
type Controller struct {
	registry     gateway.TokenRegistry
	trades       gateway.CreatorTradeSource
	history      gateway.CreatorHistorySource
	transactions gateway.TransactionSource
	social       gateway.SocialSource

	activity     *activity.Log
	listener     func(Event)
	log          logrus.FieldLogger
	now          func() time.Time
	historyLimit int

	ops     chan func()
	results chan stageResult
	stopped chan struct{}

	// Owned by the control loop.
	runCtx context.Context
	cur    *run
	last   Generation
	stale  uint64
}

// run is the state of one generation.
type run struct {
	gen      Generation
	contract string // captured at submit, never re-read
	state    State
	failedAt Stage
	started  time.Time
	ctx      context.Context
	cancel   context.CancelFunc
	log      logrus.FieldLogger

	profile     *domain.TokenProfile
	tradeInfo   *domain.CreatorTradeInfo
	historyRows []domain.CreatorHistoryEntry
	smart       *smartmoney.Result
	malformed   int
	socialStats *domain.SocialStats
	stageErrors map[Stage]string

	historyTable *view.Table[domain.CreatorHistoryEntry]
	tradeTable   *view.Table[domain.CreatorTradeEvent]
	smartTable   *view.Table[domain.SmartMoneyRecord]
	tweetTable   *view.Table[domain.Tweet]
}

// New creates a Controller.
func New(opts Options) *Controller {
	c := &Controller{
		registry:     opts.Registry,
		trades:       opts.Trades,
		history:      opts.History,
		transactions: opts.Transactions,
		social:       opts.Social,
		activity:     opts.Activity,
		listener:     opts.Listener,
		log:          logging.Component(opts.Logger, "pipeline"),
		now:          opts.Now,
		historyLimit: opts.HistoryLimit,
		ops:          make(chan func()),
		results:      make(chan stageResult),
		stopped:      make(chan struct{}),
	}
	if c.activity == nil {
		c.activity = activity.New(opts.Now)
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.historyLimit <= 0 {
		c.historyLimit = gateway.DefaultHistoryLimit
	}
	return c
}

// Activity returns the controller's activity log.
func (c *Controller) Activity() *activity.Log {
	return c.activity
}

// Run executes the control loop until ctx is done. It must be called exactly once.
func (c *Controller) Run(ctx context.Context) error {
	c.runCtx = ctx
	defer close(c.stopped)
	defer func() {
		if c.cur != nil && c.cur.cancel != nil {
			c.cur.cancel()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case op := <-c.ops:
			op()
		case r := <-c.results:
			c.handle(r)
		}
	}
}

// do runs fn on the control loop and waits for it.
func (c *Controller) do(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	op := func() {
		fn()
		close(done)
	}
	select {
	case c.ops <- op:
	case <-ctx.Done():
		return ctx.Err()
	case <-c.stopped:
		return ErrStopped
	}
	select {
	case <-done:
		return nil
	case <-c.stopped:
		return ErrStopped
	}
}

// Submit starts a new generation for contract, abandoning the active one.
// An invalid address is rejected before a generation is allocated.
func (c *Controller) Submit(ctx context.Context, contract string) (Generation, error) {
	contract = address.Normalize(contract)
	if err := address.Validate(contract); err != nil {
		return 0, err
	}

	var gen Generation
	err := c.do(ctx, func() {
		gen = c.start(contract)
	})
	return gen, err
}

// start allocates a generation and launches the lookup stage.
func (c *Controller) start(contract string) Generation {
	if c.cur != nil && c.cur.cancel != nil {
		c.cur.cancel()
		if !c.cur.state.Terminal() {
			c.cur.log.Info("generation superseded")
		}
	}

	c.last++
	ctx, cancel := context.WithCancel(c.runCtx)
	r := &run{
		gen:         c.last,
		contract:    contract,
		started:     c.now(),
		ctx:         ctx,
		cancel:      cancel,
		stageErrors: make(map[Stage]string),
		log: c.log.WithFields(logrus.Fields{
			"generation": uint64(c.last),
			"contract":   contract,
		}),
	}
	c.cur = r
	observability.RecordGenerationStarted()

	c.activity.Add(uint64(r.gen), "查询代币", activity.StatusPending, activity.TokenLink(contract))
	c.enter(StageLookup, func(ctx context.Context) (interface{}, error) {
		return c.registry.LookupToken(ctx, contract)
	})
	return r.gen
}

// enter moves the active generation into stage and launches its fetch.
func (c *Controller) enter(stage Stage, fetch func(ctx context.Context) (interface{}, error)) {
	r := c.cur
	r.state = stageStates[stage]
	r.log.WithField("stage", stage).Debug("stage started")
	c.emit(Event{Generation: r.gen, Kind: EventStageChanged, State: r.state, Stage: stage})

	gen, ctx := r.gen, r.ctx
	go func() {
		v, err := fetch(ctx)
		select {
		case c.results <- stageResult{gen: gen, stage: stage, value: v, err: err}:
		case <-c.stopped:
		}
	}()
}

func (c *Controller) emit(e Event) {
	if c.listener != nil {
		c.listener(e)
	}
}

// handle applies a stage result on the control loop.
func (c *Controller) handle(res stageResult) {
	r := c.cur
	if r == nil || res.gen != r.gen || r.state != stageStates[res.stage] {
		c.stale++
		observability.RecordStaleDiscarded()
		c.log.WithFields(logrus.Fields{
			"generation": uint64(res.gen),
			"stage":      res.stage,
		}).Debug("stale result discarded")
		return
	}

	switch res.stage {
	case StageLookup:
		c.onLookup(r, res)
	case StageCreatorTrades:
		c.onCreatorTrades(r, res)
	case StageCreatorHistory:
		c.onCreatorHistory(r, res)
	case StageSmartMoney:
		c.onSmartMoney(r, res)
	case StageSocial:
		c.onSocial(r, res)
	}
}

func (c *Controller) onLookup(r *run, res stageResult) {
	profile, _ := res.value.(*domain.TokenProfile)
	err := res.err
	if err == nil && !profile.HasCreator() {
		err = gateway.NewError(stageProviders[StageLookup], gateway.KindMissingDependency,
			errors.New("token has no creator"))
	}
	if err != nil {
		c.fail(r, StageLookup, err)
		return
	}

	r.profile = profile
	c.succeed(r, StageLookup, "获取代币信息", fmt.Sprintf("%s (%s)", profile.Name, profile.Symbol), activity.TokenLink(r.contract))

	c.activity.Add(uint64(r.gen), "请求开发者交易记录", activity.StatusPending, activity.AddressLink(profile.Creator))
	contract := r.contract
	c.enter(StageCreatorTrades, func(ctx context.Context) (interface{}, error) {
		return c.trades.FetchCreatorTrades(ctx, contract)
	})
}

func (c *Controller) onCreatorTrades(r *run, res stageResult) {
	info, _ := res.value.(*domain.CreatorTradeInfo)
	if res.err != nil || info == nil {
		c.stageFailed(r, StageCreatorTrades, "获取开发者交易记录", res.err)
	} else {
		r.tradeInfo = info
		r.tradeTable = view.NewCreatorTradeTable(info.Events, r.profile.Creator, c.now)
		c.succeed(r, StageCreatorTrades, "获取开发者交易记录", fmt.Sprintf("%d条交易", len(info.Events)), "")
	}

	// History depends on the trades call completing, not on it returning trades.
	creator := r.profile.Creator
	c.activity.Add(uint64(r.gen), "请求开发者历史", activity.StatusPending, activity.AddressLink(creator))
	c.enter(StageCreatorHistory, func(ctx context.Context) (interface{}, error) {
		return c.history.FetchCreatorHistory(ctx, creator)
	})
}

func (c *Controller) onCreatorHistory(r *run, res stageResult) {
	entries, _ := res.value.([]domain.CreatorHistoryEntry)
	if res.err != nil {
		c.stageFailed(r, StageCreatorHistory, "获取开发者历史", res.err)
	} else {
		r.historyRows = entries
		r.historyTable = view.NewCreatorHistoryTable(entries, c.now)
		c.succeed(r, StageCreatorHistory, "获取开发者历史", fmt.Sprintf("%d个代币", len(entries)), "")
	}

	contract := r.contract
	c.activity.Add(uint64(r.gen), "请求聪明钱信息", activity.StatusPending, activity.ChainFMLink)
	c.enter(StageSmartMoney, func(ctx context.Context) (interface{}, error) {
		return c.transactions.FetchTransactions(ctx, contract)
	})
}

func (c *Controller) onSmartMoney(r *run, res stageResult) {
	feed, _ := res.value.(*domain.TransactionFeed)
	switch {
	case res.err != nil:
		c.stageFailed(r, StageSmartMoney, "获取聪明钱数据", res.err)
	case feed == nil:
		c.stageFailed(r, StageSmartMoney, "获取聪明钱数据", nil)
	default:
		result := smartmoney.Aggregate(feed.Transactions, feed.Labels, r.contract)
		r.smart = &result
		r.malformed = feed.Malformed
		r.smartTable = view.NewSmartMoneyTable(result.Records)

		observability.RecordSmartMoneyEvents("qualified", len(result.Records))
		observability.RecordSmartMoneyEvents("unlabelled", result.Skipped)
		observability.RecordSmartMoneyEvents("malformed", feed.Malformed)
		r.log.WithFields(logrus.Fields{
			"transactions": len(feed.Transactions),
			"labels":       len(feed.Labels),
			"records":      len(result.Records),
			"skipped":      result.Skipped,
			"malformed":    feed.Malformed,
			"buy_volume":   result.Summary.BuyVolume,
			"sell_volume":  result.Summary.SellVolume,
		}).Debug("smart money aggregated")

		c.succeed(r, StageSmartMoney, "获取聪明钱数据",
			fmt.Sprintf("%d条交易记录，%d个地址标签", len(feed.Transactions), len(feed.Labels)), "")
	}

	contract := r.contract
	c.activity.Add(uint64(r.gen), "请求社交信息", activity.StatusPending, "")
	c.enter(StageSocial, func(ctx context.Context) (interface{}, error) {
		return c.social.FetchSocial(ctx, contract)
	})
}

func (c *Controller) onSocial(r *run, res stageResult) {
	profile, _ := res.value.(*domain.SocialProfile)
	if res.err != nil || profile == nil {
		c.stageFailed(r, StageSocial, "获取社交信息", res.err)
	} else {
		stats := profile.Stats
		r.socialStats = &stats
		r.tweetTable = view.NewTweetTable(profile.Tweets, c.now)
		c.succeed(r, StageSocial, "获取社交信息", fmt.Sprintf("%d条推文", len(profile.Tweets)), "")
	}
	c.finish(r, StateDone)
}

func (c *Controller) succeed(r *run, stage Stage, operation, detail, link string) {
	observability.RecordStage(string(stage), "ok")
	r.log.WithField("stage", stage).Info("stage completed")
	c.activity.Add(uint64(r.gen), operation, activity.StatusSuccess+" - "+detail, link)
	c.emit(Event{Generation: r.gen, Kind: EventResult, State: r.state, Stage: stage})
}

// stageFailed records a non-fatal stage failure; the caller moves on.
func (c *Controller) stageFailed(r *run, stage Stage, operation string, err error) {
	if err == nil {
		err = gateway.NewError(stageProviders[stage], gateway.KindEmptyResult, nil)
	}
	msg := describe(err)
	r.stageErrors[stage] = msg
	observability.RecordStage(string(stage), "error")
	r.log.WithFields(logrus.Fields{
		"stage": stage,
		"kind":  gateway.KindOf(err).String(),
	}).WithError(err).Warn("stage failed, continuing")
	c.activity.Add(uint64(r.gen), operation, activity.StatusError+" - "+msg, "")
	c.emit(Event{Generation: r.gen, Kind: EventStageError, State: r.state, Stage: stage, Error: msg})
}

// fail ends the generation at stage.
func (c *Controller) fail(r *run, stage Stage, err error) {
	msg := describe(err)
	r.failedAt = stage
	r.stageErrors[stage] = msg
	observability.RecordStage(string(stage), "failed")
	r.log.WithFields(logrus.Fields{
		"stage": stage,
		"kind":  gateway.KindOf(err).String(),
	}).WithError(err).Error("pipeline failed")
	c.activity.Add(uint64(r.gen), "获取代币信息", activity.StatusFailed+" - "+msg, activity.TokenLink(r.contract))
	c.emit(Event{Generation: r.gen, Kind: EventStageError, State: StateFailed, Stage: stage, Error: msg})
	c.finish(r, StateFailed)
}

func (c *Controller) finish(r *run, state State) {
	r.state = state
	r.cancel()
	observability.RecordPipelineRun(string(state), c.now().Sub(r.started).Seconds())
	r.log.WithField("state", state).Info("generation finished")
	c.emit(Event{Generation: r.gen, Kind: EventStageChanged, State: state, Stage: r.failedAt})
}

// describe renders err for the user. Unauthenticated gets an actionable message.
func describe(err error) string {
	switch gateway.KindOf(err) {
	case gateway.KindUnauthenticated:
		return "需要登录会话：请在浏览器登录后设置 CHAINFM_COOKIE"
	case gateway.KindEmptyResult:
		return "返回数据为空"
	case gateway.KindMissingDependency:
		return "代币缺少创建者信息"
	}
	return err.Error()
}
