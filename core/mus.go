package core

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the types persisted by the storage layer. Written
// by hand rather than generated: only three flat structs need wire forms.

var (
	stringSliceMUS = ord.NewSliceSer[string](ord.String)
	vectorMUS      = ord.NewSliceSer[float32](varint.Float32)
)

// ChunkMetaMUS serializes ChunkMeta values.
var ChunkMetaMUS = chunkMetaMUS{}

type chunkMetaMUS struct{}

func (s chunkMetaMUS) Marshal(v ChunkMeta, bs []byte) (n int) {
	n = ord.String.Marshal(string(v.ActorID), bs)
	n += ord.String.Marshal(v.Name, bs[n:])
	n += ord.String.Marshal(v.School, bs[n:])
	n += stringSliceMUS.Marshal(v.Companies, bs[n:])
	n += stringSliceMUS.Marshal(v.JobTitles, bs[n:])
	n += ord.String.Marshal(v.Location, bs[n:])
	return n
}

func (s chunkMetaMUS) Unmarshal(bs []byte) (v ChunkMeta, n int, err error) {
	var (
		str string
		n1  int
	)
	if str, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	v.ActorID = ActorID(str)
	if v.Name, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.School, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Companies, n1, err = stringSliceMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.JobTitles, n1, err = stringSliceMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Location, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	return v, n, nil
}

func (s chunkMetaMUS) Size(v ChunkMeta) (size int) {
	size = ord.String.Size(string(v.ActorID))
	size += ord.String.Size(v.Name)
	size += ord.String.Size(v.School)
	size += stringSliceMUS.Size(v.Companies)
	size += stringSliceMUS.Size(v.JobTitles)
	size += ord.String.Size(v.Location)
	return size
}

// VectorRecordMUS serializes VectorRecord values.
var VectorRecordMUS = vectorRecordMUS{}

type vectorRecordMUS struct{}

func (s vectorRecordMUS) Marshal(v VectorRecord, bs []byte) (n int) {
	n = ord.String.Marshal(v.ID, bs)
	n += vectorMUS.Marshal(v.Vector, bs[n:])
	n += ChunkMetaMUS.Marshal(v.Meta, bs[n:])
	return n
}

func (s vectorRecordMUS) Unmarshal(bs []byte) (v VectorRecord, n int, err error) {
	var n1 int
	if v.ID, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if v.Vector, n1, err = vectorMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Meta, n1, err = ChunkMetaMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	return v, n, nil
}

func (s vectorRecordMUS) Size(v VectorRecord) (size int) {
	size = ord.String.Size(v.ID)
	size += vectorMUS.Size(v.Vector)
	size += ChunkMetaMUS.Size(v.Meta)
	return size
}

// ProfileMUS serializes Profile values.
var ProfileMUS = profileMUS{}

type profileMUS struct{}

func (s profileMUS) Marshal(v Profile, bs []byte) (n int) {
	n = ord.String.Marshal(string(v.ActorID), bs)
	n += ord.String.Marshal(v.Name, bs[n:])
	n += ord.String.Marshal(v.Headline, bs[n:])
	n += ord.String.Marshal(v.Location, bs[n:])
	n += ord.String.Marshal(v.Bio, bs[n:])
	n += stringSliceMUS.Marshal(v.Education, bs[n:])
	n += stringSliceMUS.Marshal(v.Companies, bs[n:])
	n += ord.String.Marshal(v.CurrentRole, bs[n:])
	return n
}

func (s profileMUS) Unmarshal(bs []byte) (v Profile, n int, err error) {
	var (
		str string
		n1  int
	)
	if str, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	v.ActorID = ActorID(str)
	if v.Name, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Headline, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Location, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Bio, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Education, n1, err = stringSliceMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Companies, n1, err = stringSliceMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.CurrentRole, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	return v, n, nil
}

func (s profileMUS) Size(v Profile) (size int) {
	size = ord.String.Size(string(v.ActorID))
	size += ord.String.Size(v.Name)
	size += ord.String.Size(v.Headline)
	size += ord.String.Size(v.Location)
	size += ord.String.Size(v.Bio)
	size += stringSliceMUS.Size(v.Education)
	size += stringSliceMUS.Size(v.Companies)
	size += ord.String.Size(v.CurrentRole)
	return size
}
