package furniture

import (
	"math"

	apperrors "github.com/xiebiao/furnistore/pkg/errors"
)

// Record 家具的序列化记录
// 存储层和HTTP响应共用此结构：name是小写品类名，attributes是品类属性表
type Record struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Price       float64                `json:"price"`
	Description string                 `json:"description"`
	Attributes  map[string]interface{} `json:"attributes"`
}

// ToRecord 实体转序列化记录
func ToRecord(f Furniture) Record {
	return Record{
		ID:          f.ID(),
		Name:        f.Name(),
		Price:       f.BasePrice(),
		Description: f.Description(),
		Attributes:  f.Attributes(),
	}
}

// FromRecord 从序列化记录重建家具实体
// 重建规则与构造校验一致；缺省属性补默认值：
// 桌子尺寸medium、沙发座位3、沙发颜色gray、书柜尺寸medium
// 必需属性缺失（椅子材质、桌子形状、床尺寸、书柜层数）或品类未知则判为坏记录
func FromRecord(rec Record) (Furniture, error) {
	kind, err := ParseKind(rec.Name)
	if err != nil {
		return nil, err
	}

	var f Furniture
	switch kind {
	case KindChair:
		material, ok := stringAttr(rec.Attributes, "material")
		if !ok {
			return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "椅子记录缺少material属性")
		}
		f, err = NewChair(material, rec.Price, rec.Description)

	case KindTable:
		shape, ok := stringAttr(rec.Attributes, "shape")
		if !ok {
			return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "桌子记录缺少shape属性")
		}
		size, ok := stringAttr(rec.Attributes, "size")
		if !ok {
			size = string(DefaultTableSize)
		}
		f, err = NewTable(shape, size, rec.Price, rec.Description)

	case KindSofa:
		seats, present, seatsErr := intAttr(rec.Attributes, "seats")
		if seatsErr != nil {
			return nil, seatsErr
		}
		if !present {
			seats = DefaultSofaSeats
		}
		color, ok := stringAttr(rec.Attributes, "color")
		if !ok {
			color = string(DefaultSofaColor)
		}
		f, err = NewSofa(seats, color, rec.Price, rec.Description)

	case KindBed:
		size, ok := stringAttr(rec.Attributes, "size")
		if !ok {
			return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "床记录缺少size属性")
		}
		f, err = NewBed(size, rec.Price, rec.Description)

	case KindBookcase:
		shelves, present, shelvesErr := intAttr(rec.Attributes, "shelves")
		if shelvesErr != nil {
			return nil, shelvesErr
		}
		if !present {
			return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "书柜记录缺少shelves属性")
		}
		size, ok := stringAttr(rec.Attributes, "size")
		if !ok {
			size = string(DefaultBookcaseSize)
		}
		f, err = NewBookcase(shelves, size, rec.Price, rec.Description)
	}
	if err != nil {
		return nil, err
	}

	if rec.ID != "" {
		if err := f.SetID(rec.ID); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// stringAttr 读取字符串属性，缺失返回false
func stringAttr(attrs map[string]interface{}, key string) (string, bool) {
	v, ok := attrs[key]
	if !ok || v == nil {
		return "", false
	}
	s, ok := v.(string)
	if !ok {
		return normalizeAttrValue(v), true
	}
	return s, true
}

// intAttr 读取整数属性
// JSON反序列化的数值是float64，带小数部分视为坏数据
func intAttr(attrs map[string]interface{}, key string) (int, bool, error) {
	v, ok := attrs[key]
	if !ok || v == nil {
		return 0, false, nil
	}
	switch n := v.(type) {
	case int:
		return n, true, nil
	case int64:
		return int(n), true, nil
	case float64:
		if n != math.Trunc(n) {
			return 0, true, apperrors.Newf(apperrors.ErrCodeInvalidParams, "属性%s必须是整数", key)
		}
		return int(n), true, nil
	default:
		return 0, true, apperrors.Newf(apperrors.ErrCodeInvalidParams, "属性%s必须是整数", key)
	}
}
