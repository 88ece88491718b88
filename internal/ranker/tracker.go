package ranker

import (
	"log"
	"sort"

	"github.com/yxlinfo/yxl-info/internal/model"
	"github.com/yxlinfo/yxl-info/internal/util"
)

// Store 排名历史需要的最小 KV 接口
type Store interface {
	Get(key string, out any) (bool, error)
	Set(key string, value any) error
}

// Tracker 排名与变动计算器
// 历史名次按分区 key 持久化，排序本身不依赖存储：
// 存储读写失败时按"无历史/尽力写"降级，排名永不因持久化失败而失败
type Tracker struct {
	store Store
}

// NewTracker 创建排名计算器
func NewTracker(store Store) *Tracker {
	return &Tracker{store: store}
}

func historyKey(partitionKey string) string {
	return "rank_history:" + partitionKey
}

// Apply 计算排名和相对上期的变动，并整体覆盖写回本期名次
// 排序规则：分数降序，同分按名字升序，保证可复现
func (t *Tracker) Apply(records []model.NormalizedRecord, partitionKey string) []model.RankedEntity {
	sorted := make([]model.NormalizedRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Score != sorted[j].Score {
			return sorted[i].Score > sorted[j].Score
		}
		return sorted[i].Name < sorted[j].Name
	})

	prior := make(map[string]int)
	if t.store != nil {
		if _, err := t.store.Get(historyKey(partitionKey), &prior); err != nil {
			// 读失败视为无历史
			prior = make(map[string]int)
		}
	}

	entities := make([]model.RankedEntity, len(sorted))
	current := make(map[string]int, len(sorted))
	for i, rec := range sorted {
		rank := i + 1
		key := util.NormalizeName(rec.Name)

		entity := model.RankedEntity{
			NormalizedRecord: rec,
			ComputedRank:     rank,
		}

		if priorRank, ok := prior[key]; !ok {
			entity.Delta = model.RankDelta{Kind: model.DeltaNew}
		} else if diff := priorRank - rank; diff > 0 {
			entity.Delta = model.RankDelta{Kind: model.DeltaUp, Steps: diff}
		} else if diff < 0 {
			entity.Delta = model.RankDelta{Kind: model.DeltaDown, Steps: -diff}
		} else {
			entity.Delta = model.RankDelta{Kind: model.DeltaSame}
		}

		entities[i] = entity
		current[key] = rank
	}

	// 整体覆盖：消失的名字不再保留，避免污染后续比较
	if t.store != nil {
		if err := t.store.Set(historyKey(partitionKey), current); err != nil {
			log.Printf("rank history write failed (partition=%s): %v", partitionKey, err)
		}
	}

	return entities
}
