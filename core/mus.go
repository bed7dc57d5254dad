package core

import (
	"errors"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// Hand-written MUS serializers for the types the snapshot cache persists.
// Field order is part of the wire format; changing it invalidates
// previously written snapshots. Timestamps are stored as Unix microseconds.

var (
	// IDMUS serializes ID values.
	IDMUS = idMUS{}
	// MoneyMUS serializes Money values.
	MoneyMUS = moneyMUS{}
	// ProductImageMUS serializes ProductImage values.
	ProductImageMUS = productImageMUS{}
	// ProductMUS serializes Product values.
	ProductMUS = productMUS{}
	// FeedStatsMUS serializes FeedStats values.
	FeedStatsMUS = feedStatsMUS{}
	// CatalogSnapshotMUS serializes CatalogSnapshot values.
	CatalogSnapshotMUS = catalogSnapshotMUS{}
)

var errNegativeLength = errors.New("negative length")

type idMUS struct{}

func (idMUS) Marshal(id ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idMUS) Unmarshal(bs []byte) (id ID, n int, err error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idMUS) Size(id ID) (size int) {
	return varint.Uint64.Size(uint64(id))
}

func (s idMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return n, err
}

func marshalTime(t time.Time, bs []byte) (n int) {
	return varint.Int64.Marshal(t.UnixMicro(), bs)
}

func unmarshalTime(bs []byte) (t time.Time, n int, err error) {
	v, n, err := varint.Int64.Unmarshal(bs)
	if err != nil {
		return time.Time{}, n, err
	}
	return time.UnixMicro(v).UTC(), n, nil
}

func sizeTime(t time.Time) (size int) {
	return varint.Int64.Size(t.UnixMicro())
}

type moneyMUS struct{}

func (moneyMUS) Marshal(m Money, bs []byte) (n int) {
	n = varint.Float64.Marshal(m.Amount, bs)
	n += ord.String.Marshal(m.Currency, bs[n:])
	return n
}

func (moneyMUS) Unmarshal(bs []byte) (m Money, n int, err error) {
	m.Amount, n, err = varint.Float64.Unmarshal(bs)
	if err != nil {
		return m, n, err
	}
	var n1 int
	m.Currency, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return m, n, err
}

func (moneyMUS) Size(m Money) (size int) {
	return varint.Float64.Size(m.Amount) + ord.String.Size(m.Currency)
}

func (s moneyMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return n, err
}

type productImageMUS struct{}

func (productImageMUS) Marshal(img ProductImage, bs []byte) (n int) {
	n = ord.String.Marshal(img.URL, bs)
	n += ord.String.Marshal(img.AltText, bs[n:])
	n += varint.Int.Marshal(img.Width, bs[n:])
	n += varint.Int.Marshal(img.Height, bs[n:])
	return n
}

func (productImageMUS) Unmarshal(bs []byte) (img ProductImage, n int, err error) {
	var n1 int
	img.URL, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return img, n, err
	}
	img.AltText, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return img, n, err
	}
	img.Width, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return img, n, err
	}
	img.Height, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	return img, n, err
}

func (productImageMUS) Size(img ProductImage) (size int) {
	size = ord.String.Size(img.URL)
	size += ord.String.Size(img.AltText)
	size += varint.Int.Size(img.Width)
	size += varint.Int.Size(img.Height)
	return size
}

func (s productImageMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return n, err
}

type productMUS struct{}

func (productMUS) Marshal(p Product, bs []byte) (n int) {
	n = IDMUS.Marshal(p.Id, bs)
	n += ord.String.Marshal(p.Handle, bs[n:])
	n += ord.String.Marshal(p.Title, bs[n:])
	n += ord.String.Marshal(p.Vendor, bs[n:])
	n += ord.String.Marshal(p.ProductType, bs[n:])
	n += ord.String.Marshal(p.Description, bs[n:])
	n += ord.String.Marshal(p.BodyHTML, bs[n:])
	n += varint.Int.Marshal(len(p.Tags), bs[n:])
	for _, tag := range p.Tags {
		n += ord.String.Marshal(tag, bs[n:])
	}
	n += varint.Int.Marshal(int(p.Status), bs[n:])
	n += marshalTime(p.CreatedAt, bs[n:])
	n += marshalTime(p.UpdatedAt, bs[n:])
	n += MoneyMUS.Marshal(p.Price, bs[n:])
	n += ord.Bool.Marshal(p.CompareAtPrice != nil, bs[n:])
	if p.CompareAtPrice != nil {
		n += MoneyMUS.Marshal(*p.CompareAtPrice, bs[n:])
	}
	n += varint.Int.Marshal(p.Inventory, bs[n:])
	n += varint.Int.Marshal(len(p.Images), bs[n:])
	for _, img := range p.Images {
		n += ProductImageMUS.Marshal(img, bs[n:])
	}
	n += varint.Float64.Marshal(p.Rating, bs[n:])
	n += varint.Int.Marshal(p.ReviewCount, bs[n:])
	return n
}

func (productMUS) Unmarshal(bs []byte) (p Product, n int, err error) {
	var n1 int
	p.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return p, n, err
	}
	for _, dst := range []*string{&p.Handle, &p.Title, &p.Vendor, &p.ProductType, &p.Description, &p.BodyHTML} {
		*dst, n1, err = ord.String.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return p, n, err
		}
	}
	var length int
	length, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return p, n, err
	}
	if length < 0 {
		return p, n, errNegativeLength
	}
	if length > 0 {
		p.Tags = make([]string, length)
		for i := range p.Tags {
			p.Tags[i], n1, err = ord.String.Unmarshal(bs[n:])
			n += n1
			if err != nil {
				return p, n, err
			}
		}
	}
	var status int
	status, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return p, n, err
	}
	p.Status = ProductStatus(status)
	p.CreatedAt, n1, err = unmarshalTime(bs[n:])
	n += n1
	if err != nil {
		return p, n, err
	}
	p.UpdatedAt, n1, err = unmarshalTime(bs[n:])
	n += n1
	if err != nil {
		return p, n, err
	}
	p.Price, n1, err = MoneyMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return p, n, err
	}
	var hasCompareAt bool
	hasCompareAt, n1, err = ord.Bool.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return p, n, err
	}
	if hasCompareAt {
		var compareAt Money
		compareAt, n1, err = MoneyMUS.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return p, n, err
		}
		p.CompareAtPrice = &compareAt
	}
	p.Inventory, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return p, n, err
	}
	length, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return p, n, err
	}
	if length < 0 {
		return p, n, errNegativeLength
	}
	if length > 0 {
		p.Images = make([]ProductImage, length)
		for i := range p.Images {
			p.Images[i], n1, err = ProductImageMUS.Unmarshal(bs[n:])
			n += n1
			if err != nil {
				return p, n, err
			}
		}
	}
	p.Rating, n1, err = varint.Float64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return p, n, err
	}
	p.ReviewCount, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	return p, n, err
}

func (productMUS) Size(p Product) (size int) {
	size = IDMUS.Size(p.Id)
	size += ord.String.Size(p.Handle)
	size += ord.String.Size(p.Title)
	size += ord.String.Size(p.Vendor)
	size += ord.String.Size(p.ProductType)
	size += ord.String.Size(p.Description)
	size += ord.String.Size(p.BodyHTML)
	size += varint.Int.Size(len(p.Tags))
	for _, tag := range p.Tags {
		size += ord.String.Size(tag)
	}
	size += varint.Int.Size(int(p.Status))
	size += sizeTime(p.CreatedAt)
	size += sizeTime(p.UpdatedAt)
	size += MoneyMUS.Size(p.Price)
	size += ord.Bool.Size(p.CompareAtPrice != nil)
	if p.CompareAtPrice != nil {
		size += MoneyMUS.Size(*p.CompareAtPrice)
	}
	size += varint.Int.Size(p.Inventory)
	size += varint.Int.Size(len(p.Images))
	for _, img := range p.Images {
		size += ProductImageMUS.Size(img)
	}
	size += varint.Float64.Size(p.Rating)
	size += varint.Int.Size(p.ReviewCount)
	return size
}

func (s productMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return n, err
}

type feedStatsMUS struct{}

func (feedStatsMUS) Marshal(fs FeedStats, bs []byte) (n int) {
	n = varint.Int.Marshal(fs.TotalRows, bs)
	n += varint.Int.Marshal(fs.Retained, bs[n:])
	n += varint.Int.Marshal(fs.Skipped, bs[n:])
	n += varint.Int.Marshal(fs.Errored, bs[n:])
	n += varint.Int.Marshal(fs.BlankRows, bs[n:])
	n += varint.Int64.Marshal(int64(fs.Elapsed), bs[n:])
	return n
}

func (feedStatsMUS) Unmarshal(bs []byte) (fs FeedStats, n int, err error) {
	var n1 int
	for _, dst := range []*int{&fs.TotalRows, &fs.Retained, &fs.Skipped, &fs.Errored, &fs.BlankRows} {
		*dst, n1, err = varint.Int.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return fs, n, err
		}
	}
	var elapsed int64
	elapsed, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	fs.Elapsed = time.Duration(elapsed)
	return fs, n, err
}

func (feedStatsMUS) Size(fs FeedStats) (size int) {
	size = varint.Int.Size(fs.TotalRows)
	size += varint.Int.Size(fs.Retained)
	size += varint.Int.Size(fs.Skipped)
	size += varint.Int.Size(fs.Errored)
	size += varint.Int.Size(fs.BlankRows)
	size += varint.Int64.Size(int64(fs.Elapsed))
	return size
}

func (s feedStatsMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return n, err
}

type catalogSnapshotMUS struct{}

func (catalogSnapshotMUS) Marshal(snap CatalogSnapshot, bs []byte) (n int) {
	n = IDMUS.Marshal(snap.FeedKey, bs)
	n += varint.Int.Marshal(len(snap.Products), bs[n:])
	for _, product := range snap.Products {
		n += ProductMUS.Marshal(product, bs[n:])
	}
	n += FeedStatsMUS.Marshal(snap.Stats, bs[n:])
	n += marshalTime(snap.CreatedAt, bs[n:])
	return n
}

func (catalogSnapshotMUS) Unmarshal(bs []byte) (snap CatalogSnapshot, n int, err error) {
	var n1 int
	snap.FeedKey, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return snap, n, err
	}
	var length int
	length, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return snap, n, err
	}
	if length < 0 {
		return snap, n, errNegativeLength
	}
	if length > 0 {
		snap.Products = make([]Product, length)
		for i := range snap.Products {
			snap.Products[i], n1, err = ProductMUS.Unmarshal(bs[n:])
			n += n1
			if err != nil {
				return snap, n, err
			}
		}
	}
	snap.Stats, n1, err = FeedStatsMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return snap, n, err
	}
	snap.CreatedAt, n1, err = unmarshalTime(bs[n:])
	n += n1
	return snap, n, err
}

func (catalogSnapshotMUS) Size(snap CatalogSnapshot) (size int) {
	size = IDMUS.Size(snap.FeedKey)
	size += varint.Int.Size(len(snap.Products))
	for _, product := range snap.Products {
		size += ProductMUS.Size(product)
	}
	size += FeedStatsMUS.Size(snap.Stats)
	size += sizeTime(snap.CreatedAt)
	return size
}

func (s catalogSnapshotMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return n, err
}
