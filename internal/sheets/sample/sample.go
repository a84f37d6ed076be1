// Package sample provides the fixed built-in donation dataset used when the
// remote source is unreachable and as the default local backend.
package sample

import (
	"context"

	"donasi/internal/core"
	ports "donasi/internal/sheets"
)

type Store struct{}

var _ ports.RowReader = (*Store)(nil)

func New() *Store { return &Store{} }

// FetchRows returns a fresh copy of the sample dataset. Deterministic: a
// fetch failure upstream must yield exactly the same snapshot as reading
// the sample directly.
func (s *Store) FetchRows(_ context.Context) ([]core.RawRow, error) {
	return Dataset(), nil
}

// Dataset is the 15-row built-in dataset, column layout A:G.
func Dataset() []core.RawRow {
	src := [][7]string{
		{"2024-01-15", "Budi Santoso", "Pendidikan", "500000", "Yayasan Pintar", "Tunai", "Donasi rutin"},
		{"2024-01-14", "Sari Wijaya", "Kesehatan", "1000000", "RS Sehat", "Transfer", "Bantuan operasi"},
		{"2024-01-13", "PT Maju Jaya", "Bencana Alam", "5000000", "Korban banjir", "Transfer", "Tanggap darurat"},
		{"2024-01-12", "Anonim", "Pendidikan", "250000", "Sekolah Darurat", "Tunai", "Buku pelajaran"},
		{"2024-01-11", "Rina Melati", "Kesehatan", "750000", "Klinik Gratis", "Transfer", "Obat-obatan"},
		{"2024-01-10", "Komunitas Peduli", "Bencana Alam", "3000000", "Pengungsi gempa", "Transfer", "Tenda dan makanan"},
		{"2024-01-09", "Ahmad Fauzi", "Pendidikan", "1000000", "Beasiswa", "Transfer", "Beasiswa mahasiswa"},
		{"2024-01-08", "CV Sejahtera", "Kesehatan", "2000000", "Rumah Sakit", "Transfer", "Alat kesehatan"},
		{"2024-01-07", "Donatur Anonim", "Bencana Alam", "1500000", "Banjir", "Tunai", "Bantuan banjir"},
		{"2024-01-06", "Budi Santoso", "Pendidikan", "750000", "Sekolah", "Transfer", "Donasi bulanan"},
		{"2024-01-05", "Sari Wijaya", "Kesehatan", "1250000", "Klinik", "Transfer", "Bantuan obat"},
		{"2024-01-04", "PT Jaya Abadi", "Sosial", "3000000", "Panti Asuhan", "Transfer", "Bantuan sosial"},
		{"2024-01-03", "Anonim", "Keagamaan", "1000000", "Masjid", "Tunai", "Infaq masjid"},
		{"2024-01-02", "Rina Melati", "Kesehatan", "800000", "RS Umum", "Transfer", "Bantuan pasien"},
		{"2024-01-01", "Komunitas Peduli", "Bencana Alam", "2500000", "Gempa", "Transfer", "Bantuan gempa"},
	}
	rows := make([]core.RawRow, len(src))
	for i, r := range src {
		row := make(core.RawRow, len(r))
		copy(row, r[:])
		rows[i] = row
	}
	return rows
}
