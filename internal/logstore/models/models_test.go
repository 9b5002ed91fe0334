package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoreImageSequenceFloor(t *testing.T) {
	tests := []struct {
		name string
		img  StoreImage
		want uint64
	}{
		{name: "empty image", img: StoreImage{}, want: 1},
		{name: "next sequence wins", img: StoreImage{NextSequence: 12, Entries: []Entry{{Sequence: 3}}}, want: 12},
		{name: "entries above next", img: StoreImage{NextSequence: 4, Entries: []Entry{{Sequence: 9}, {Sequence: 2}}}, want: 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.img.SequenceFloor())
		})
	}
}
