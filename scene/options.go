package scene

// Options 配置场景构建。
type Options struct {
	DefaultSamples int // 未声明 samples 时使用，<=0 时取 roulette.DefaultSamples
	Debug          DebugOptions
}

// DebugOptions 控制调试相关输出。
type DebugOptions struct {
	RawValues bool // 在调试 JSON 中保留每个属性的原始写法
}
