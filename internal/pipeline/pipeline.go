package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/yxlinfo/yxl-info/internal/model"
	"github.com/yxlinfo/yxl-info/internal/parser"
	"github.com/yxlinfo/yxl-info/internal/ranker"
	"github.com/yxlinfo/yxl-info/internal/soop"
)

// Fetcher 源文件下载抽象
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Options 数据源配置
type Options struct {
	MainURL    string // 누적기여도 多 sheet 工作簿
	SynergyURL string // 시너지표 单 sheet 工作簿
}

// SeasonTable 单个赛季表
type SeasonTable struct {
	Name    string                   `json:"name"`
	Season  int                      `json:"season,omitempty"`
	Records []model.NormalizedRecord `json:"records"`
}

// Result 一次刷新的全部产出，交给渲染层按值使用
type Result struct {
	RunID       string                   `json:"runId"`
	RefreshedAt time.Time                `json:"refreshedAt"` // 本次刷新完成时间
	UpdatedAt   time.Time                `json:"updatedAt"`   // 源表自带的数据时间
	Total       []model.RankedEntity     `json:"total"`
	Integrated  []model.NormalizedRecord `json:"integrated"`
	Seasons     []SeasonTable            `json:"seasons"`
	Synergy     []model.EnrichedEntity   `json:"synergy"`
	Errors      []string                 `json:"errors,omitempty"` // 已降级的单源错误
}

// Pipeline 组合根：下载 -> 解析 -> 排名 -> 直播补充
// 自身不含业务逻辑，只做编排和错误聚合
type Pipeline struct {
	fetcher  Fetcher
	tracker  *ranker.Tracker
	enricher *soop.Enricher
	opts     Options
	now      func() time.Time
	loc      *time.Location
}

// New 创建流水线
func New(fetcher Fetcher, tracker *ranker.Tracker, enricher *soop.Enricher, opts Options) *Pipeline {
	// 集计口径是 KST，排名历史的分区 key 跟着 KST 月份走
	loc, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		loc = time.FixedZone("KST", 9*60*60)
	}
	return &Pipeline{
		fetcher:  fetcher,
		tracker:  tracker,
		enricher: enricher,
		opts:     opts,
		now:      time.Now,
		loc:      loc,
	}
}

// Refresh 执行一轮完整刷新
// 单源失败降级记入 Result.Errors；两个源都失败才返回错误
func (p *Pipeline) Refresh(ctx context.Context) (*Result, error) {
	result := &Result{
		RunID:       uuid.New().String(),
		RefreshedAt: p.now(),
	}
	monthKey := p.now().In(p.loc).Format("2006-01")

	mainWB, mainErr := p.loadWorkbook(ctx, p.opts.MainURL)
	synergyWB, synergyErr := p.loadWorkbook(ctx, p.opts.SynergyURL)

	if mainErr != nil && synergyErr != nil {
		return nil, fmt.Errorf("all sources unavailable: main: %v; synergy: %v", mainErr, synergyErr)
	}

	if mainErr != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("main source unavailable: %v", mainErr))
	} else {
		p.processMain(mainWB, monthKey, result)
		mainWB.Close()
	}

	if synergyErr != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("synergy source unavailable: %v", synergyErr))
	} else {
		p.processSynergy(ctx, synergyWB, monthKey, result)
		synergyWB.Close()
	}

	if result.UpdatedAt.IsZero() {
		result.UpdatedAt = result.RefreshedAt
	}

	return result, nil
}

func (p *Pipeline) loadWorkbook(ctx context.Context, url string) (*excelize.File, error) {
	data, err := p.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	wb, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse workbook failed: %w", err)
	}
	return wb, nil
}

// processMain 主工作簿：累计排名 + 合并表 + 赛季表
func (p *Pipeline) processMain(wb *excelize.File, monthKey string, result *Result) {
	layout := parser.RecognizeMainLayout(wb.GetSheetList())

	totalRecords := parser.Extract(sheetGrid(wb, layout.Total), parser.TotalAliases)
	result.Total = p.tracker.Apply(totalRecords, "total:"+monthKey)

	result.Integrated = parser.Extract(sheetGrid(wb, layout.Integrated), parser.SeasonAliases)

	result.Seasons = make([]SeasonTable, 0, len(layout.Seasons))
	for _, name := range layout.Seasons {
		records := parser.Extract(sheetGrid(wb, name), parser.SeasonAliases)
		season := SeasonTable{Name: name, Records: records}
		if no, ok := parser.SeasonNumber(name); ok {
			season.Season = no
		}
		result.Seasons = append(result.Seasons, season)
	}
}

// processSynergy 시너지표：排名 + 变动 + 直播状态补充
func (p *Pipeline) processSynergy(ctx context.Context, wb *excelize.File, monthKey string, result *Result) {
	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "synergy workbook has no sheets")
		return
	}

	records := parser.Extract(sheetGrid(wb, sheets[0]), parser.SynergyAliases)

	// 数据时间取第一条非空的 새로고침시간
	for _, rec := range records {
		if raw, ok := rec.Fields[model.FieldRefreshedAt]; ok {
			if t, ok := parser.ParseSheetTime(raw); ok {
				result.UpdatedAt = t
				break
			}
		}
	}

	ranked := p.tracker.Apply(records, "synergy:"+monthKey)
	result.Synergy = p.enricher.Enrich(ctx, ranked)
}

// sheetGrid 读出整张 sheet，表缺失/读取失败返回空表，调用方继续处理其余部分
func sheetGrid(wb *excelize.File, sheetName string) [][]string {
	if sheetName == "" {
		return nil
	}
	rows, err := wb.GetRows(sheetName)
	if err != nil {
		log.Printf("read sheet %q failed: %v", sheetName, err)
		return nil
	}
	return rows
}
