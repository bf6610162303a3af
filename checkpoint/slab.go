package checkpoint

import (
	"encoding/binary"
	"math"

	"gonum.org/v1/gonum/floats"
)

// EncodeFloat64Slab serialises a 2D/3D slab as row-major native float64,
// matching §6 "native float of chosen precision".
func EncodeFloat64Slab(data []float64) []byte {
	buf := make([]byte, 8*len(data))
	for i, v := range data {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(v))
	}
	return buf
}

// DecodeFloat64Slab is the inverse of EncodeFloat64Slab.
func DecodeFloat64Slab(buf []byte) []float64 {
	n := len(buf) / 8
	data := make([]float64, n)
	for i := 0; i < n; i++ {
		data[i] = math.Float64frombits(binary.LittleEndian.Uint64(buf[i*8:]))
	}
	return data
}

// EncodeIntSlab serialises an int slab (index_soil, soil_index) as
// little-endian int32, one entry per cell.
func EncodeIntSlab(data []int) []byte {
	buf := make([]byte, 4*len(data))
	for i, v := range data {
		binary.LittleEndian.PutUint32(buf[i*4:], uint32(int32(v)))
	}
	return buf
}

// DecodeIntSlab is the inverse of EncodeIntSlab.
func DecodeIntSlab(buf []byte) []int {
	n := len(buf) / 4
	data := make([]int, n)
	for i := 0; i < n; i++ {
		data[i] = int(int32(binary.LittleEndian.Uint32(buf[i*4:])))
	}
	return data
}

// BitEqual reports whether two decoded float64 slabs are exactly equal,
// the §8 round-trip invariant ("restores every 2D/3D slab to bit
// equality").
func BitEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Float64bits(a[i]) != math.Float64bits(b[i]) {
			return false
		}
	}
	return true
}

// VGRow is one row of the on-disk Van Genuchten lookup table, columns
// exactly as listed in §6.
type VGRow struct {
	Index                                                    int
	ThetaRes, ThetaWP, ThetaFC, ThetaSat, GammaSat, Alpha, L, N float64
}

// EncodeVGTable flattens the table's float columns into one contiguous
// slab suitable for EncodeFloat64Slab, in the §6 column order.
func EncodeVGTable(rows []VGRow) []float64 {
	flat := make([]float64, 0, len(rows)*8)
	for _, r := range rows {
		flat = append(flat, r.ThetaRes, r.ThetaWP, r.ThetaFC, r.ThetaSat, r.GammaSat, r.Alpha, r.L, r.N)
	}
	return flat
}

// DecodeVGTable is the inverse of EncodeVGTable for the float columns;
// Index is not stored and is set to the row's position in the slab.
func DecodeVGTable(flat []float64) []VGRow {
	n := len(flat) / 8
	rows := make([]VGRow, n)
	for i := range rows {
		row := flat[i*8 : i*8+8]
		rows[i] = VGRow{
			Index: i,
			ThetaRes: row[0], ThetaWP: row[1], ThetaFC: row[2], ThetaSat: row[3],
			GammaSat: row[4], Alpha: row[5], L: row[6], N: row[7],
		}
	}
	return rows
}

// SumCheck returns the floats.Sum of a slab, a cheap checksum-style
// diagnostic logged alongside a checkpoint write, mirroring io.go's own
// use of gonum/floats for column reductions.
func SumCheck(data []float64) float64 {
	return floats.Sum(data)
}
