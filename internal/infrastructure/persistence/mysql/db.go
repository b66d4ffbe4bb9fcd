package mysql

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/furnistore/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 自动迁移表结构（AutoMigrate）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	// 1. 构建DSN连接字符串
	dsn := cfg.Database.DSN()

	// 2. 配置GORM日志
	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	// 3. 连接数据库
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			// 使用UTC+8时间（配合MySQL的TZ=Asia/Shanghai）
			return time.Now()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 4. 配置连接池
	// 学习要点：合理的连接池配置对性能至关重要
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	// 最大打开连接数（建议：CPU核数 * 2 + 磁盘数量）
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)

	// 最大空闲连接数（建议：MaxOpenConns的1/4到1/2）
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)

	// 连接最大存活时间（防止数据库主动断开连接）
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// 5. 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Println("✓ 数据库连接成功")

	// 6. 自动迁移表结构（开发环境）
	// 注意：生产环境应使用专门的迁移工具（如golang-migrate）
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// autoMigrate 自动迁移表结构
// 学习要点：
// 1. AutoMigrate只会创建表、添加字段，不会删除或修改现有字段
// 2. 生产环境应使用版本化的迁移脚本，不要依赖AutoMigrate
func autoMigrate(db *gorm.DB) error {
	// 定义需要迁移的模型
	// 注意：这里需要使用GORM的模型定义（带tag），不是domain层的实体
	return db.AutoMigrate(
		&UserModel{},
		&FurnitureModel{},
		&OrderModel{},
		&OrderItemModel{},
	)
}

// UserModel GORM用户模型
// 设计说明：
// 1. 这是infrastructure层的数据模型，包含GORM tag
// 2. domain/user/entity.go是领域实体，不依赖GORM
// 3. Repository负责两者之间的转换
// 4. 唯一索引显式命名（uk_users_username/uk_users_email），
//    冲突时能从MySQL错误消息里区分是用户名重复还是邮箱重复
type UserModel struct {
	ID              string         `gorm:"primaryKey;size:36;comment:用户ID（UUID）"`
	Username        string         `gorm:"uniqueIndex:uk_users_username;size:50;not null;comment:用户名"`
	Email           string         `gorm:"uniqueIndex:uk_users_email;size:100;not null;comment:邮箱"`
	FullName        string         `gorm:"size:100;not null;comment:姓名"`
	Password        string         `gorm:"size:255;not null;comment:密码（bcrypt加密）"`
	ShippingAddress string         `gorm:"size:200;comment:收货地址（空串表示未填写）"`
	CreatedAt       time.Time      `gorm:"comment:创建时间"`
	UpdatedAt       time.Time      `gorm:"comment:更新时间"`
	DeletedAt       gorm.DeletedAt `gorm:"index;comment:删除时间（软删除）"`
}

// TableName 指定表名
func (UserModel) TableName() string {
	return "users"
}

// FurnitureModel GORM家具库存模型
// 设计说明:
// 1. 一行=一个库存条目：家具记录+数量（家具与库存量一一对应）
// 2. 价格使用double存储,与领域层float64精确互转
//    (decimal会截断小数位,破坏同款判定的价格比对)
// 3. 品类属性差异大(椅子材质/沙发座位数/书柜层数),用JSON列承载
// 4. 不用软删除:库存是全量写穿快照,软删除墓碑会与重建的主键冲突
type FurnitureModel struct {
	ID          string    `gorm:"primaryKey;size:64;comment:家具ID"`
	Name        string    `gorm:"index;size:20;not null;comment:品类名(chair/table/sofa/bed/bookcase)"`
	Price       float64   `gorm:"type:double;not null;comment:基础单价(美元)"`
	Description string    `gorm:"type:text;comment:家具描述"`
	Attributes  string    `gorm:"type:json;comment:品类属性(JSON对象)"`
	Quantity    int       `gorm:"default:0;comment:库存数量"`
	CreatedAt   time.Time `gorm:"comment:创建时间"`
	UpdatedAt   time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (FurnitureModel) TableName() string {
	return "furniture"
}

// OrderModel GORM订单模型
// 教学要点:
// 1. 与OrderItemModel是一对多关系
// 2. 订单号是业务生成的字符串(ORD+时间戳),直接作主键
// 3. 历史订单只追加不修改,没有状态列也没有软删除
type OrderModel struct {
	OrderID         string           `gorm:"primaryKey;size:32;comment:订单号"`
	UserID          string           `gorm:"index;size:36;not null;comment:买家用户ID"`
	Date            time.Time        `gorm:"index;not null;comment:下单时间"`
	TotalPrice      float64          `gorm:"type:double;not null;comment:订单总金额(美元)"`
	PaymentMethod   string           `gorm:"size:20;not null;comment:支付方式"`
	ShippingAddress string           `gorm:"size:200;not null;comment:收货地址快照"`
	Items           []OrderItemModel `gorm:"foreignKey:OrderID;references:OrderID"` // 一对多关联
	CreatedAt       time.Time        `gorm:"comment:创建时间"`
}

// TableName 指定表名
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel GORM订单明细模型
// 教学要点:
// 1. 记录结算时的价格快照(UnitPrice是含折扣含税单价)
// 2. OrderID外键关联orders表的订单号
type OrderItemModel struct {
	ID          uint    `gorm:"primaryKey"`
	OrderID     string  `gorm:"index;size:32;not null;comment:订单号"`
	FurnitureID string  `gorm:"size:64;not null;comment:家具ID"`
	Name        string  `gorm:"size:20;not null;comment:品类名"`
	Quantity    int     `gorm:"not null;comment:购买数量"`
	UnitPrice   float64 `gorm:"type:double;not null;comment:结算时单价(含折扣含税,美元)"`
}

// TableName 指定表名
func (OrderItemModel) TableName() string {
	return "order_items"
}
