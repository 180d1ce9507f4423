package postgres

var schema = []string{
	`CREATE TABLE IF NOT EXISTS product (
        id               TEXT PRIMARY KEY,
        name             TEXT NOT NULL UNIQUE,
        price            DOUBLE PRECISION NOT NULL CHECK (price >= 0),
        qty              INTEGER NOT NULL CHECK (qty >= 0),
        reorder_point    INTEGER NOT NULL CHECK (reorder_point >= 0),
        reorder_quantity INTEGER CHECK (reorder_quantity > 0),
        supplier         TEXT NOT NULL DEFAULT '',
        created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
        updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`,
	`CREATE TABLE IF NOT EXISTS sales (
        id         TEXT PRIMARY KEY,
        product_id TEXT NOT NULL REFERENCES product(id),
        quantity   INTEGER NOT NULL CHECK (quantity > 0),
        sale_date  TIMESTAMPTZ NOT NULL
    )`,
	`CREATE INDEX IF NOT EXISTS idx_sales_product_id ON sales (product_id)`,
	`CREATE TABLE IF NOT EXISTS reorder (
        id           TEXT PRIMARY KEY,
        product_id   TEXT NOT NULL REFERENCES product(id),
        quantity     INTEGER NOT NULL CHECK (quantity > 0),
        reorder_date TIMESTAMPTZ NOT NULL
    )`,
	`CREATE INDEX IF NOT EXISTS idx_reorder_product_id ON reorder (product_id)`,
	`CREATE TABLE IF NOT EXISTS processed_events (
        event_id     TEXT PRIMARY KEY,
        sale_id      TEXT NOT NULL,
        processed_at TIMESTAMPTZ NOT NULL
    )`,
}
