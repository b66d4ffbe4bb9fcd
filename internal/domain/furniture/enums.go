package furniture

import (
	"strings"

	apperrors "github.com/xiebiao/furnistore/pkg/errors"
)

// 品类属性的封闭枚举定义
// 每个枚举提供Parse函数：大小写不敏感，非法值返回带可选值列表的参数错误

// ChairMaterial 椅子材质
type ChairMaterial string

const (
	MaterialWood    ChairMaterial = "wood"
	MaterialPlastic ChairMaterial = "plastic"
	MaterialLeather ChairMaterial = "leather"
	MaterialFabric  ChairMaterial = "fabric"
)

// TableShape 桌子形状
type TableShape string

const (
	ShapeRound  TableShape = "round"
	ShapeSquare TableShape = "square"
	ShapeOval   TableShape = "oval"
)

// Size 通用尺寸（桌子、书柜）
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

// SofaColor 沙发颜色
type SofaColor string

const (
	ColorGray  SofaColor = "gray"
	ColorBlack SofaColor = "black"
	ColorBeige SofaColor = "beige"
	ColorWhite SofaColor = "white"
)

// BedSize 床尺寸
type BedSize string

const (
	BedSingle BedSize = "single"
	BedTwin   BedSize = "twin"
	BedQueen  BedSize = "queen"
	BedKing   BedSize = "king"
)

// 沙发座位数与书柜层数的取值范围
const (
	MinSofaSeats       = 2
	MaxSofaSeats       = 5
	MinBookcaseShelves = 1
	MaxBookcaseShelves = 10
)

// 各品类的默认属性值（序列化记录缺省时补齐）
const (
	DefaultTableSize    = SizeMedium
	DefaultSofaSeats    = 3
	DefaultSofaColor    = ColorGray
	DefaultBookcaseSize = SizeMedium
)

// ChairMaterials 全部合法椅子材质
func ChairMaterials() []ChairMaterial {
	return []ChairMaterial{MaterialWood, MaterialPlastic, MaterialLeather, MaterialFabric}
}

// TableShapes 全部合法桌子形状
func TableShapes() []TableShape {
	return []TableShape{ShapeRound, ShapeSquare, ShapeOval}
}

// Sizes 全部合法尺寸
func Sizes() []Size {
	return []Size{SizeSmall, SizeMedium, SizeLarge}
}

// SofaColors 全部合法沙发颜色
func SofaColors() []SofaColor {
	return []SofaColor{ColorGray, ColorBlack, ColorBeige, ColorWhite}
}

// BedSizes 全部合法床尺寸
func BedSizes() []BedSize {
	return []BedSize{BedSingle, BedTwin, BedQueen, BedKing}
}

// ParseChairMaterial 解析椅子材质
func ParseChairMaterial(s string) (ChairMaterial, error) {
	m := ChairMaterial(strings.ToLower(s))
	for _, valid := range ChairMaterials() {
		if m == valid {
			return m, nil
		}
	}
	return "", apperrors.Newf(apperrors.ErrCodeInvalidAttribute,
		"无效的椅子材质: %s（可选: wood, plastic, leather, fabric）", s)
}

// ParseTableShape 解析桌子形状
func ParseTableShape(s string) (TableShape, error) {
	sh := TableShape(strings.ToLower(s))
	for _, valid := range TableShapes() {
		if sh == valid {
			return sh, nil
		}
	}
	return "", apperrors.Newf(apperrors.ErrCodeInvalidAttribute,
		"无效的桌子形状: %s（可选: round, square, oval）", s)
}

// ParseSize 解析通用尺寸
func ParseSize(s string) (Size, error) {
	sz := Size(strings.ToLower(s))
	for _, valid := range Sizes() {
		if sz == valid {
			return sz, nil
		}
	}
	return "", apperrors.Newf(apperrors.ErrCodeInvalidAttribute,
		"无效的尺寸: %s（可选: small, medium, large）", s)
}

// ParseSofaColor 解析沙发颜色
func ParseSofaColor(s string) (SofaColor, error) {
	c := SofaColor(strings.ToLower(s))
	for _, valid := range SofaColors() {
		if c == valid {
			return c, nil
		}
	}
	return "", apperrors.Newf(apperrors.ErrCodeInvalidAttribute,
		"无效的沙发颜色: %s（可选: gray, black, beige, white）", s)
}

// ParseBedSize 解析床尺寸
func ParseBedSize(s string) (BedSize, error) {
	sz := BedSize(strings.ToLower(s))
	for _, valid := range BedSizes() {
		if sz == valid {
			return sz, nil
		}
	}
	return "", apperrors.Newf(apperrors.ErrCodeInvalidAttribute,
		"无效的床尺寸: %s（可选: single, twin, queen, king）", s)
}
