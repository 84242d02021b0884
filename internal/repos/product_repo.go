package repos

import (
	"database/sql"
	"encoding/json"
	"strings"

	"jerkco/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

// CatalogFilter holds the optional criteria for a catalog query.
// Filters are conjunctive; nil/empty values are no-ops.
type CatalogFilter struct {
	Category string
	Brand    string
	Color    string
	Size     string
	Search   string
	MinPrice *float64
	MaxPrice *float64
	SortBy   string // name | price | created_at
	SortOrd  string // asc | desc
	Limit    int
	Offset   int
}

const productSelect = `
  SELECT
    p.id, p.name, p.description, p.price, p.image_url, p.category, p.brand,
    p.color, p.sizes_json, p.stock, p.created_at, p.updated_at,
    (SELECT COALESCE(AVG(r.rating),0) FROM ratings r WHERE r.product_id = p.id) AS avg_rating,
    (SELECT COUNT(*) FROM ratings r WHERE r.product_id = p.id) AS rating_count
  FROM products p`

func buildWhere(f CatalogFilter) (string, []any) {
	where := []string{}
	args := []any{}
	if f.Category != "" {
		where = append(where, `p.category = ?`)
		args = append(args, f.Category)
	}
	if f.Brand != "" {
		where = append(where, `p.brand = ?`)
		args = append(args, f.Brand)
	}
	if f.Color != "" {
		where = append(where, `p.color = ?`)
		args = append(args, f.Color)
	}
	if f.Search != "" {
		where = append(where, `p.name LIKE ?`)
		args = append(args, "%"+f.Search+"%")
	}
	if f.MinPrice != nil {
		where = append(where, `p.price >= ?`)
		args = append(args, *f.MinPrice)
	}
	if f.MaxPrice != nil {
		where = append(where, `p.price <= ?`)
		args = append(args, *f.MaxPrice)
	}
	if f.Size != "" {
		// Exact membership against the decoded size list, not a
		// substring match on the raw encoding.
		where = append(where, `EXISTS (SELECT 1 FROM json_each(p.sizes_json) je WHERE je.value = ?)`)
		args = append(args, f.Size)
	}
	if len(where) == 0 {
		return "", args
	}
	return ` WHERE ` + strings.Join(where, " AND "), args
}

func orderClause(sortBy, sortOrd string) string {
	col := map[string]string{"name": "p.name", "price": "p.price"}[sortBy]
	if col == "" {
		col = "p.created_at"
	}
	dir := "DESC"
	if sortOrd == "asc" {
		dir = "ASC"
	}
	return ` ORDER BY ` + col + ` ` + dir
}

// List returns one page of the filtered catalog plus the total match count.
func (r *ProductRepo) List(f CatalogFilter) ([]domain.Product, int, error) {
	cond, args := buildWhere(f)

	var total int
	if err := r.db.Get(&total, `SELECT COUNT(*) FROM products p`+cond, args...); err != nil {
		return nil, 0, err
	}

	q := productSelect + cond + orderClause(f.SortBy, f.SortOrd) + ` LIMIT ? OFFSET ?`
	args = append(args, f.Limit, f.Offset)

	var out []domain.Product
	if err := r.db.Select(&out, q, args...); err != nil {
		return nil, 0, err
	}
	for i := range out {
		finishProduct(&out[i])
	}
	return out, total, nil
}

func (r *ProductRepo) Get(id int64) (domain.Product, error) {
	var p domain.Product
	if err := r.db.Get(&p, productSelect+` WHERE p.id = ?`, id); err != nil {
		if err == sql.ErrNoRows {
			return domain.Product{}, domain.NotFound("product")
		}
		return domain.Product{}, err
	}
	finishProduct(&p)
	return p, nil
}

func (r *ProductRepo) Create(p domain.Product) (domain.Product, error) {
	now := nowUTC()
	res, err := r.db.Exec(`
	  INSERT INTO products(name,description,price,image_url,category,brand,color,sizes_json,stock,created_at,updated_at)
	  VALUES(?,?,?,?,?,?,?,?,?,?,?)`,
		p.Name, p.Description, p.Price, p.ImageURL, p.Category, p.Brand, p.Color,
		encodeSizes(p.Sizes), p.Stock, now, now)
	if err != nil {
		return domain.Product{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Product{}, err
	}
	return r.Get(id)
}

// ProductPatch carries the fields of a partial update; nil means "leave as is".
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *float64
	ImageURL    *string
	Category    *string
	Brand       *string
	Color       *string
	Sizes       *[]string
	Stock       *int
}

// Update applies a partial update and refreshes updated_at.
func (r *ProductRepo) Update(id int64, patch ProductPatch) (domain.Product, error) {
	set := []string{}
	args := []any{}
	add := func(col string, v any) {
		set = append(set, col+" = ?")
		args = append(args, v)
	}
	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.Price != nil {
		add("price", *patch.Price)
	}
	if patch.ImageURL != nil {
		add("image_url", *patch.ImageURL)
	}
	if patch.Category != nil {
		add("category", *patch.Category)
	}
	if patch.Brand != nil {
		add("brand", *patch.Brand)
	}
	if patch.Color != nil {
		add("color", *patch.Color)
	}
	if patch.Sizes != nil {
		add("sizes_json", encodeSizes(*patch.Sizes))
	}
	if patch.Stock != nil {
		add("stock", *patch.Stock)
	}
	add("updated_at", nowUTC())

	res, err := r.db.Exec(`UPDATE products SET `+strings.Join(set, ", ")+` WHERE id = ?`, append(args, id)...)
	if err != nil {
		return domain.Product{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.Product{}, domain.NotFound("product")
	}
	return r.Get(id)
}

// Delete removes a product; dependent ratings and purchases cascade.
func (r *ProductRepo) Delete(id int64) error {
	res, err := r.db.Exec(`DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFound("product")
	}
	return nil
}

func (r *ProductRepo) Count() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM products`)
	return n, err
}

// finishProduct decodes the stored size list and rounds the derived
// average; the JSON encoding never leaves the storage boundary.
func finishProduct(p *domain.Product) {
	p.Sizes = decodeSizes(p.SizesJSON)
	p.AvgRating = domain.Round2(p.AvgRating)
}

func encodeSizes(sizes []string) string {
	if sizes == nil {
		sizes = []string{}
	}
	b, _ := json.Marshal(sizes)
	return string(b)
}

func decodeSizes(raw string) []string {
	var out []string
	if raw == "" || json.Unmarshal([]byte(raw), &out) != nil {
		return []string{}
	}
	if out == nil {
		out = []string{}
	}
	return out
}
