package config

// Ego 主车初始状态与规划包络
// 功能：定义主车的初始位置与启动时一次性配置的规划参数
type Ego struct {
	Lane            int     `yaml:"lane"`             // 初始车道
	S               float64 `yaml:"s"`                // 初始位置
	V               float64 `yaml:"v"`                // 初始速度
	TargetSpeed     float64 `yaml:"target_speed"`     // 目标速度
	LanesAvailable  int     `yaml:"lanes_available"`  // 可用车道数
	GoalS           float64 `yaml:"goal_s"`           // 目标位置
	GoalLane        int     `yaml:"goal_lane"`        // 目标车道
	MaxAcceleration float64 `yaml:"max_acceleration"` // 每规划步最大加速度
	MaxSpeed        float64 `yaml:"max_speed"`        // 限速
	PreferredBuffer float64 `yaml:"preferred_buffer"` // 最小安全跟车距离
}

// Road 道路配置
// 功能：描述多车道道路及随机交通流的生成参数
type Road struct {
	SpeedLimit  float64   `yaml:"speed_limit"`            // 道路限速
	LaneSpeeds  []float64 `yaml:"lane_speeds"`            // 每条车道的车流速度，长度即车道数
	Density     float64   `yaml:"density,omitempty"`      // 随机交通流密度（每个单位长度生成车辆的概率）
	UpdateWidth float64   `yaml:"update_width,omitempty"` // 随机交通流生成的纵向范围
	SpeedJitter float64   `yaml:"speed_jitter,omitempty"` // 随机生成车辆的车速在车道车流速度上下浮动的幅度
}

// Cost 代价函数权重
type Cost struct {
	ReachGoal       float64 `yaml:"reach_goal"`
	Efficiency      float64 `yaml:"efficiency"`
	MaxAcceleration float64 `yaml:"max_acceleration"`
	SpeedLimit      float64 `yaml:"speed_limit"`
	LaneChange      float64 `yaml:"lane_change"`
	OffRoad         float64 `yaml:"off_road"`
}

// ControlStep 指定模拟器模拟时间范围和间隔的配置项
type ControlStep struct {
	Start    int32   `yaml:"start"`    // 开始步数
	Total    int32   `yaml:"total"`    // 总步数
	Interval float64 `yaml:"interval"` // 每步的时间间隔
}

// Control 模拟器控制配置
type Control struct {
	Step ControlStep `yaml:"step"`
}

// Vehicle 初始他车
type Vehicle struct {
	ID   int32   `yaml:"id"`
	Lane int     `yaml:"lane"`
	S    float64 `yaml:"s"`
	V    float64 `yaml:"v"`
}

// Traffic 交通流配置
// 说明：Vehicles为空时按Road.Density随机生成
type Traffic struct {
	Seed     uint64    `yaml:"seed"`
	Vehicles []Vehicle `yaml:"vehicles,omitempty"`
}

// Mongo 决策记录输出到MongoDB
type Mongo struct {
	URI string `yaml:"uri"` // MongoDB连接字符串
	DB  string `yaml:"db"`  // 数据库名
	Col string `yaml:"col"` // 集合名
}

// SQLite 决策记录输出到SQLite
type SQLite struct {
	Path string `yaml:"path"`
}

// Output 输出配置，均为空时不记录
type Output struct {
	Mongo  *Mongo  `yaml:"mongo,omitempty"`
	SQLite *SQLite `yaml:"sqlite,omitempty"`
}

// Config YAML配置文件的根结构
type Config struct {
	Ego     Ego     `yaml:"ego"`
	Road    Road    `yaml:"road"`
	Cost    *Cost   `yaml:"cost,omitempty"` // 为空时使用默认权重
	Control Control `yaml:"control"`
	Traffic Traffic `yaml:"traffic"`
	Output  Output  `yaml:"output"`
}
