package define

// Strategy 设备分配策略(分组方式 × 排序方式的笛卡尔积,共四种)
type Strategy int

const (
	StrategyLargestFirst        Strategy = iota // 不分组,用量大的优先
	StrategySmallestFirst                       // 不分组,用量小的优先
	StrategyGroupedLargestFirst                 // 按通信计划分组,组用量大的优先
	StrategyGroupedSmallestFirst                // 按通信计划分组,组用量小的优先
)

// AllStrategies 完整的四种策略,按固定顺序执行以保证可复现
func AllStrategies() []Strategy {
	return []Strategy{
		StrategyLargestFirst,
		StrategySmallestFirst,
		StrategyGroupedLargestFirst,
		StrategyGroupedSmallestFirst,
	}
}

// IndividualStrategies 仅逐设备优化时的策略子集(跳过分组变体)
func IndividualStrategies() []Strategy {
	return []Strategy{
		StrategyLargestFirst,
		StrategySmallestFirst,
	}
}

// Grouped 是否按通信计划预分组
func (s Strategy) Grouped() bool {
	return s == StrategyGroupedLargestFirst || s == StrategyGroupedSmallestFirst
}

// LargestFirst 是否按用量从大到小排序
func (s Strategy) LargestFirst() bool {
	return s == StrategyLargestFirst || s == StrategyGroupedLargestFirst
}

// String 策略的可读名称(用于日志和结果记录)
func (s Strategy) String() string {
	switch s {
	case StrategyLargestFirst:
		return "LargestFirst"
	case StrategySmallestFirst:
		return "SmallestFirst"
	case StrategyGroupedLargestFirst:
		return "GroupedLargestFirst"
	case StrategyGroupedSmallestFirst:
		return "GroupedSmallestFirst"
	default:
		return "Unknown"
	}
}
