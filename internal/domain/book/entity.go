package book

import (
	"fmt"
	"math"
	"reflect"
	"strings"
)

// Status 借阅状态
type Status string

const (
	StatusAvailable  Status = "available"   // 在架可借
	StatusCheckedOut Status = "checked_out" // 已借出
	StatusUnknown    Status = "unknown"     // 未知
)

// Availability 借阅信息
// 图书上可能完全没有这个子对象(nil),统计时按"既不可借也未借出"处理
type Availability struct {
	Status Status `json:"status"`
}

// Book 图书记录
// 设计说明:
// 1. 目录不分配ID,记录的身份就是*Book指针本身
// 2. 调用方持有指针可以直接修改字段,目录在下一次变更操作时才会重新统计
// 3. Attributes存放更新时写入的非标准字段(如顶层的status)
type Book struct {
	Title        string         `json:"title"`
	Author       string         `json:"author"`
	Genre        string         `json:"genre"`
	Year         int            `json:"year"`
	Availability *Availability  `json:"availability,omitempty"`
	Attributes   map[string]any `json:"attributes,omitempty"`
}

// Updates 字段更新集合(字段名 → 新值)
type Updates map[string]any

// 标准字段名
const (
	FieldTitle        = "title"
	FieldAuthor       = "author"
	FieldGenre        = "genre"
	FieldYear         = "year"
	FieldAvailability = "availability"
)

// NewBook 创建图书(工厂方法)
func NewBook(title, author, genre string, year int, status Status) *Book {
	b := &Book{
		Title:  title,
		Author: author,
		Genre:  genre,
		Year:   year,
	}
	if status != "" {
		b.Availability = &Availability{Status: status}
	}
	return b
}

// StatusOrUnknown 返回借阅状态,没有借阅信息时返回unknown
func (b *Book) StatusOrUnknown() Status {
	if b == nil || b.Availability == nil || b.Availability.Status == "" {
		return StatusUnknown
	}
	return b.Availability.Status
}

// HasStatus 判断借阅状态(容忍nil记录和nil借阅信息)
func (b *Book) HasStatus(status Status) bool {
	return b != nil && b.Availability != nil && b.Availability.Status == status
}

// Clone 复制一份记录
// Attributes做浅拷贝,Availability复制值
func (b *Book) Clone() *Book {
	if b == nil {
		return nil
	}
	c := *b
	if b.Availability != nil {
		a := *b.Availability
		c.Availability = &a
	}
	if b.Attributes != nil {
		c.Attributes = make(map[string]any, len(b.Attributes))
		for k, v := range b.Attributes {
			c.Attributes[k] = v
		}
	}
	return &c
}

// Field 按字段名读取值
// 第二个返回值为false表示字段不存在(nil借阅信息或未写入的扩展字段)
func (b *Book) Field(key string) (any, bool) {
	switch key {
	case FieldTitle:
		return b.Title, true
	case FieldAuthor:
		return b.Author, true
	case FieldGenre:
		return b.Genre, true
	case FieldYear:
		return b.Year, true
	case FieldAvailability:
		if b.Availability == nil {
			return nil, false
		}
		return b.Availability, true
	}
	v, ok := b.Attributes[key]
	return v, ok
}

// SetField 按字段名写入值
// 标准字段会做类型转换,无法转换时返回ErrInvalidArgument(记录不会被修改)
// 其他字段原样写入Attributes
func (b *Book) SetField(key string, value any) error {
	switch key {
	case FieldTitle, FieldAuthor, FieldGenre:
		s, err := toString(key, value)
		if err != nil {
			return err
		}
		switch key {
		case FieldTitle:
			b.Title = s
		case FieldAuthor:
			b.Author = s
		default:
			b.Genre = s
		}
		return nil
	case FieldYear:
		y, err := toInt(value)
		if err != nil {
			return err
		}
		b.Year = y
		return nil
	case FieldAvailability:
		a, err := toAvailability(value)
		if err != nil {
			return err
		}
		b.Availability = a
		return nil
	}

	if b.Attributes == nil {
		b.Attributes = make(map[string]any)
	}
	b.Attributes[key] = value
	return nil
}

// =========================================
// 真值判断
// =========================================
// 规则:nil、false、0、NaN、""为假值,其他(包括空map、空切片)为真值

// IsNullish 判断值是否为"空"(nil或nil指针/map/切片)
func IsNullish(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// Truthy 判断值是否为真值
func Truthy(v any) bool {
	if IsNullish(v) {
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool()
	case reflect.String:
		return rv.Len() > 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f != 0 && !math.IsNaN(f)
	}
	return true
}

// =========================================
// 辅助函数:标准字段类型转换
// =========================================

func toString(key string, value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case fmt.Stringer:
		return v.String(), nil
	}
	return "", invalidField(key, value)
}

func toInt(value any) (int, error) {
	switch v := value.(type) {
	case nil:
		return 0, nil
	case int:
		return v, nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case float64:
		// JSON数字解码后是float64,只接受整数
		if v != math.Trunc(v) || math.IsInf(v, 0) || math.IsNaN(v) {
			return 0, invalidField(FieldYear, value)
		}
		return int(v), nil
	}
	return 0, invalidField(FieldYear, value)
}

func toAvailability(value any) (*Availability, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case *Availability:
		return v, nil
	case Availability:
		return &v, nil
	case Status:
		return &Availability{Status: v}, nil
	case map[string]any:
		// JSON对象:{"status": "available"}
		raw, ok := v["status"]
		if !ok || raw == nil {
			return &Availability{}, nil
		}
		s, ok := raw.(string)
		if !ok {
			return nil, invalidField(FieldAvailability, value)
		}
		return &Availability{Status: Status(strings.TrimSpace(s))}, nil
	}
	return nil, invalidField(FieldAvailability, value)
}

func invalidField(key string, value any) error {
	return ErrInvalidField.WithCause(fmt.Errorf("字段%s不接受%T类型的值", key, value))
}
