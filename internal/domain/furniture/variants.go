package furniture

import (
	apperrors "github.com/xiebiao/furnistore/pkg/errors"
)

// 五个品类的实体定义与工厂方法
// 工厂方法构造即校验：任何字段非法直接返回参数错误，不产生半合法实例

var (
	_ Furniture = (*Chair)(nil)
	_ Furniture = (*Table)(nil)
	_ Furniture = (*Sofa)(nil)
	_ Furniture = (*Bed)(nil)
	_ Furniture = (*Bookcase)(nil)
)

// Chair 椅子
type Chair struct {
	base
	material ChairMaterial
}

// NewChair 创建椅子
func NewChair(material string, basePrice float64, description string) (*Chair, error) {
	m, err := ParseChairMaterial(material)
	if err != nil {
		return nil, err
	}
	b, err := newBase(KindChair, basePrice, description)
	if err != nil {
		return nil, err
	}
	return &Chair{base: b, material: m}, nil
}

// Material 椅子材质
func (c *Chair) Material() ChairMaterial { return c.material }

func (c *Chair) Attributes() map[string]interface{} {
	return map[string]interface{}{"material": string(c.material)}
}

func (c *Chair) IdenticalTo(other Furniture) bool {
	o, ok := other.(*Chair)
	return ok && c.sameBase(&o.base) && c.material == o.material
}

func (c *Chair) Clone() Furniture {
	clone := *c
	return &clone
}

// Table 桌子
type Table struct {
	base
	shape TableShape
	size  Size
}

// NewTable 创建桌子（尺寸默认medium）
func NewTable(shape, size string, basePrice float64, description string) (*Table, error) {
	sh, err := ParseTableShape(shape)
	if err != nil {
		return nil, err
	}
	if size == "" {
		size = string(DefaultTableSize)
	}
	sz, err := ParseSize(size)
	if err != nil {
		return nil, err
	}
	b, err := newBase(KindTable, basePrice, description)
	if err != nil {
		return nil, err
	}
	return &Table{base: b, shape: sh, size: sz}, nil
}

// Shape 桌子形状
func (t *Table) Shape() TableShape { return t.shape }

// Size 桌子尺寸
func (t *Table) Size() Size { return t.size }

func (t *Table) Attributes() map[string]interface{} {
	return map[string]interface{}{
		"shape": string(t.shape),
		"size":  string(t.size),
	}
}

func (t *Table) IdenticalTo(other Furniture) bool {
	o, ok := other.(*Table)
	return ok && t.sameBase(&o.base) && t.shape == o.shape && t.size == o.size
}

func (t *Table) Clone() Furniture {
	clone := *t
	return &clone
}

// Sofa 沙发
type Sofa struct {
	base
	seats int
	color SofaColor
}

// NewSofa 创建沙发（颜色默认gray）
func NewSofa(seats int, color string, basePrice float64, description string) (*Sofa, error) {
	if seats < MinSofaSeats || seats > MaxSofaSeats {
		return nil, apperrors.Newf(apperrors.ErrCodeInvalidAttribute,
			"无效的沙发座位数: %d（范围: %d-%d）", seats, MinSofaSeats, MaxSofaSeats)
	}
	if color == "" {
		color = string(DefaultSofaColor)
	}
	c, err := ParseSofaColor(color)
	if err != nil {
		return nil, err
	}
	b, err := newBase(KindSofa, basePrice, description)
	if err != nil {
		return nil, err
	}
	return &Sofa{base: b, seats: seats, color: c}, nil
}

// Seats 沙发座位数
func (s *Sofa) Seats() int { return s.seats }

// Color 沙发颜色
func (s *Sofa) Color() SofaColor { return s.color }

func (s *Sofa) Attributes() map[string]interface{} {
	return map[string]interface{}{
		"seats": s.seats,
		"color": string(s.color),
	}
}

func (s *Sofa) IdenticalTo(other Furniture) bool {
	o, ok := other.(*Sofa)
	return ok && s.sameBase(&o.base) && s.seats == o.seats && s.color == o.color
}

func (s *Sofa) Clone() Furniture {
	clone := *s
	return &clone
}

// Bed 床
type Bed struct {
	base
	size BedSize
}

// NewBed 创建床
func NewBed(size string, basePrice float64, description string) (*Bed, error) {
	sz, err := ParseBedSize(size)
	if err != nil {
		return nil, err
	}
	b, err := newBase(KindBed, basePrice, description)
	if err != nil {
		return nil, err
	}
	return &Bed{base: b, size: sz}, nil
}

// Size 床尺寸
func (b *Bed) Size() BedSize { return b.size }

func (b *Bed) Attributes() map[string]interface{} {
	return map[string]interface{}{"size": string(b.size)}
}

func (b *Bed) IdenticalTo(other Furniture) bool {
	o, ok := other.(*Bed)
	return ok && b.sameBase(&o.base) && b.size == o.size
}

func (b *Bed) Clone() Furniture {
	clone := *b
	return &clone
}

// Bookcase 书柜
type Bookcase struct {
	base
	shelves int
	size    Size
}

// NewBookcase 创建书柜（尺寸默认medium）
func NewBookcase(shelves int, size string, basePrice float64, description string) (*Bookcase, error) {
	if shelves < MinBookcaseShelves || shelves > MaxBookcaseShelves {
		return nil, apperrors.Newf(apperrors.ErrCodeInvalidAttribute,
			"无效的书柜层数: %d（范围: %d-%d）", shelves, MinBookcaseShelves, MaxBookcaseShelves)
	}
	if size == "" {
		size = string(DefaultBookcaseSize)
	}
	sz, err := ParseSize(size)
	if err != nil {
		return nil, err
	}
	b, err := newBase(KindBookcase, basePrice, description)
	if err != nil {
		return nil, err
	}
	return &Bookcase{base: b, shelves: shelves, size: sz}, nil
}

// Shelves 书柜层数
func (bc *Bookcase) Shelves() int { return bc.shelves }

// Size 书柜尺寸
func (bc *Bookcase) Size() Size { return bc.size }

func (bc *Bookcase) Attributes() map[string]interface{} {
	return map[string]interface{}{
		"shelves": bc.shelves,
		"size":    string(bc.size),
	}
}

func (bc *Bookcase) IdenticalTo(other Furniture) bool {
	o, ok := other.(*Bookcase)
	return ok && bc.sameBase(&o.base) && bc.shelves == o.shelves && bc.size == o.size
}

func (bc *Bookcase) Clone() Furniture {
	clone := *bc
	return &clone
}
