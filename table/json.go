package table

import (
	"encoding/json"

	"github.com/jacobbishopxy/fabrix/ferror"
	"github.com/jacobbishopxy/fabrix/series"
	"github.com/jacobbishopxy/fabrix/value"
)

// JSON shapes, per spec §6:
//
//	Column:  { data: [ {name, datatype, values: [...]}, ... ], index_tag: {loc, name, data_type} | null }
//	Row:     { types: [ValueType...], values: [ {col: value, ...}, ... ] }
//	Dataset: { names: [...], types: [...], values: [ [v,v,...], ... ] }

type columnSeriesJSON struct {
	Name     string          `json:"name"`
	Datatype value.ValueType `json:"datatype"`
	Values   []value.Value   `json:"values"`
}

type columnIndexTagJSON struct {
	Loc      int             `json:"loc"`
	Name     string          `json:"name"`
	DataType value.ValueType `json:"data_type"`
}

type columnShapeJSON struct {
	Data     []columnSeriesJSON  `json:"data"`
	IndexTag *columnIndexTagJSON `json:"index_tag"`
}

// MarshalColumnJSON renders f using the Column JSON shape.
func (f *Fabrix) MarshalColumnJSON() ([]byte, error) {
	shape := columnShapeJSON{Data: make([]columnSeriesJSON, len(f.data))}
	for i, c := range f.data {
		values := make([]value.Value, c.Len())
		for j := 0; j < c.Len(); j++ {
			values[j], _ = c.Get(j)
		}
		shape.Data[i] = columnSeriesJSON{Name: c.Name(), Datatype: c.Dtype(), Values: values}
	}
	if f.indexTag != nil {
		shape.IndexTag = &columnIndexTagJSON{Loc: f.indexTag.Loc, Name: f.indexTag.Name, DataType: f.indexTag.DataType}
	}
	return json.Marshal(shape)
}

// UnmarshalColumnJSON parses the Column JSON shape into a Fabrix. Round
// tripping via MarshalColumnJSON/UnmarshalColumnJSON reproduces the
// original Fabrix (spec §8 invariant 4).
func UnmarshalColumnJSON(data []byte) (*Fabrix, error) {
	var shape columnShapeJSON
	if err := json.Unmarshal(data, &shape); err != nil {
		return nil, ferror.Wrap("unmarshal column json", err)
	}
	cols := make([]*series.Series, len(shape.Data))
	for i, cj := range shape.Data {
		s, err := series.FromValues(cj.Name, cj.Values, true)
		if err != nil {
			return nil, err
		}
		cols[i] = s
	}
	var spec IndexSpec
	if shape.IndexTag != nil {
		spec = IndexByPos(shape.IndexTag.Loc)
	}
	return FromSeries(cols, spec)
}

// rowShapeJSON is the Row JSON shape: a column-type header plus one map per
// row. Map keys are column names; per spec §9 Open Question (a), this
// shape (along with Dataset below) was historically stubbed and is
// implemented here from the documented wire format.
type rowShapeJSON struct {
	Types  []value.ValueType          `json:"types"`
	Values []map[string]value.Value `json:"values"`
}

// MarshalRowJSON renders f using the Row JSON shape.
func (f *Fabrix) MarshalRowJSON() ([]byte, error) {
	schema := f.Schema().Fields()
	shape := rowShapeJSON{Types: make([]value.ValueType, len(schema))}
	for i, fi := range schema {
		shape.Types[i] = fi.Dtype
	}
	it := f.IterNamedRows()
	for {
		row, ok := it.Next()
		if !ok {
			break
		}
		m := make(map[string]value.Value, len(row.Data))
		for _, c := range row.Data {
			m[c.Name] = c.Value
		}
		shape.Values = append(shape.Values, m)
	}
	return json.Marshal(shape)
}

// UnmarshalRowJSON parses the Row JSON shape into a Fabrix, using colOrder
// to fix column order (the wire format's per-row maps carry no ordering of
// their own).
func UnmarshalRowJSON(data []byte, colOrder []string) (*Fabrix, error) {
	var shape rowShapeJSON
	if err := json.Unmarshal(data, &shape); err != nil {
		return nil, ferror.Wrap("unmarshal row json", err)
	}
	rows := make([]NamedRow, len(shape.Values))
	for i, m := range shape.Values {
		cells := make([]NamedCell, len(colOrder))
		for j, name := range colOrder {
			cells[j] = NamedCell{Name: name, Value: m[name]}
		}
		rows[i] = NewNamedRow(cells)
	}
	if len(rows) == 0 {
		fields := make([]FieldInfo, len(colOrder))
		for i, name := range colOrder {
			dt := value.Null
			if i < len(shape.Types) {
				dt = shape.Types[i]
			}
			fields[i] = FieldInfo{Name: name, Dtype: dt}
		}
		return NewEmpty(fields, nil)
	}
	return FromNamedRows(rows)
}

// datasetShapeJSON is the Dataset JSON shape: parallel names/types headers
// plus a 2-D array of bare values (no per-row name repetition).
type datasetShapeJSON struct {
	Names  []string           `json:"names"`
	Types  []value.ValueType  `json:"types"`
	Values [][]value.Value  `json:"values"`
}

// MarshalDatasetJSON renders f using the Dataset JSON shape.
func (f *Fabrix) MarshalDatasetJSON() ([]byte, error) {
	schema := f.Schema().Fields()
	shape := datasetShapeJSON{
		Names: make([]string, len(schema)),
		Types: make([]value.ValueType, len(schema)),
	}
	for i, fi := range schema {
		shape.Names[i] = fi.Name
		shape.Types[i] = fi.Dtype
	}
	it := f.IterRows()
	for {
		row, ok := it.Next()
		if !ok {
			break
		}
		shape.Values = append(shape.Values, row.Data)
	}
	return json.Marshal(shape)
}

// UnmarshalDatasetJSON parses the Dataset JSON shape into a Fabrix.
func UnmarshalDatasetJSON(data []byte) (*Fabrix, error) {
	var shape datasetShapeJSON
	if err := json.Unmarshal(data, &shape); err != nil {
		return nil, ferror.Wrap("unmarshal dataset json", err)
	}
	if len(shape.Values) == 0 {
		fields := make([]FieldInfo, len(shape.Names))
		for i, name := range shape.Names {
			dt := value.Null
			if i < len(shape.Types) {
				dt = shape.Types[i]
			}
			fields[i] = FieldInfo{Name: name, Dtype: dt}
		}
		return NewEmpty(fields, nil)
	}
	rows := make([]Row, len(shape.Values))
	for i, vs := range shape.Values {
		rows[i] = NewRow(vs)
	}
	built, err := FromRows(rows)
	if err != nil {
		return nil, err
	}
	for i, name := range shape.Names {
		if i >= built.Width() {
			break
		}
		built.data[i].Rename(name)
	}
	return built, nil
}
