package predict

import (
	"database/sql"
	"fmt"
	"reflect"
	"strings"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/footballmoneyball/moneyball/internal/logger"
)

// Persistable is implemented by every model backed by a sqlite table. Column
// layout is declared with struct tags: `column` names the column, `dbtype`
// its SQL type, `primary:"true"` marks key fields and `index:"true"` asks
// for a secondary index.
type Persistable interface {
	TableName() string
	PrimaryKey() map[string]any
	BeforeSave() error
}

var (
	db   *sql.DB
	dbMu sync.Mutex
)

// InitDatabase opens (or creates) the sqlite database at path.
func InitDatabase(path string) error {
	dbMu.Lock()
	defer dbMu.Unlock()

	if db != nil {
		return nil
	}

	d, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if err := d.Ping(); err != nil {
		d.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	db = d
	logger.Info("Database initialized", path)
	return nil
}

// CloseDatabase closes the database connection.
func CloseDatabase() error {
	dbMu.Lock()
	defer dbMu.Unlock()

	if db == nil {
		return nil
	}
	err := db.Close()
	db = nil
	return err
}

func getDB() (*sql.DB, error) {
	dbMu.Lock()
	defer dbMu.Unlock()

	if db == nil {
		return nil, fmt.Errorf("database not initialized")
	}
	return db, nil
}

// CreateTable creates the table and indexes for the given model if they do
// not already exist.
func CreateTable(obj Persistable) error {
	d, err := getDB()
	if err != nil {
		return err
	}

	tableName := obj.TableName()
	createSQL := createTableSQL(obj, tableName)

	logger.Debug("Creating table", createSQL)
	if _, err := d.Exec(createSQL); err != nil {
		return fmt.Errorf("failed to create table %s: %w", tableName, err)
	}

	for _, query := range indexSQL(obj, tableName) {
		if _, err := d.Exec(query); err != nil {
			logger.Warn("Failed to create index", err)
		}
	}

	return nil
}

// Save persists the object, inserting or updating as needed.
func Save(obj Persistable) error {
	if err := obj.BeforeSave(); err != nil {
		return fmt.Errorf("before save hook failed: %w", err)
	}

	exists, err := Exists(obj)
	if err != nil {
		return fmt.Errorf("failed to check existence: %w", err)
	}

	if exists {
		return update(obj)
	}
	return insert(obj)
}

// Exists reports whether a row with the object's primary key is present.
func Exists(obj Persistable) (bool, error) {
	d, err := getDB()
	if err != nil {
		return false, err
	}

	whereClause, values := whereForKey(obj.PrimaryKey())
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s", obj.TableName(), whereClause)

	var count int
	if err := d.QueryRow(query, values...).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check existence in %s: %w", obj.TableName(), err)
	}
	return count > 0, nil
}

// Delete removes the object's row.
func Delete(obj Persistable) error {
	d, err := getDB()
	if err != nil {
		return err
	}

	whereClause, values := whereForKey(obj.PrimaryKey())
	query := fmt.Sprintf("DELETE FROM %s WHERE %s", obj.TableName(), whereClause)

	if _, err := d.Exec(query, values...); err != nil {
		return fmt.Errorf("failed to delete from %s: %w", obj.TableName(), err)
	}
	return nil
}

// FindByPrimaryKey loads the row identified by primaryKey into obj.
// sql.ErrNoRows is returned unwrapped so callers can translate it.
func FindByPrimaryKey(obj Persistable, primaryKey map[string]any) error {
	d, err := getDB()
	if err != nil {
		return err
	}

	columns, destinations := selectData(obj)
	whereClause, values := whereForKey(primaryKey)
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s",
		strings.Join(columns, ", "), obj.TableName(), whereClause)

	if err := d.QueryRow(query, values...).Scan(destinations...); err != nil {
		if err == sql.ErrNoRows {
			return err
		}
		return fmt.Errorf("failed to scan row from %s: %w", obj.TableName(), err)
	}
	return nil
}

// FindWhere returns every row of T's table matching the where clause,
// ordered and limited by suffix ("ORDER BY ...", "LIMIT ..."). Either clause
// may be empty. T must be a pointer model type.
func FindWhere[T Persistable](whereClause, suffix string, args ...any) ([]T, error) {
	d, err := getDB()
	if err != nil {
		return nil, err
	}

	var zero T
	elemType := reflect.TypeOf(zero).Elem()
	template := reflect.New(elemType).Interface().(T)

	columns, _ := selectData(template)
	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(columns, ", "), template.TableName())
	if whereClause != "" {
		query += " WHERE " + whereClause
	}
	if suffix != "" {
		query += " " + suffix
	}

	logger.Debug("FindWhere SQL", query)

	rows, err := d.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", template.TableName(), err)
	}
	defer rows.Close()

	var results []T
	for rows.Next() {
		obj := reflect.New(elemType).Interface().(T)
		_, destinations := selectData(obj)
		if err := rows.Scan(destinations...); err != nil {
			return nil, fmt.Errorf("failed to scan row from %s: %w", template.TableName(), err)
		}
		results = append(results, obj)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows from %s: %w", template.TableName(), err)
	}

	return results, nil
}

// FindAll returns every row of T's table.
func FindAll[T Persistable]() ([]T, error) {
	return FindWhere[T]("", "")
}

/////////////////////////////////////////////////////////////////////////
////// SQL generation from struct tags
/////////////////////////////////////////////////////////////////////////

func createTableSQL(obj any, tableName string) string {
	objType := derefType(obj)

	var columns []string
	var primaryKeys []string

	for i := 0; i < objType.NumField(); i++ {
		field := objType.Field(i)
		if !field.IsExported() {
			continue
		}

		dbType := field.Tag.Get("dbtype")
		if dbType == "" {
			continue
		}

		columnName := columnNameFor(field)
		if field.Tag.Get("primary") == "true" {
			primaryKeys = append(primaryKeys, columnName)
		}
		columns = append(columns, fmt.Sprintf("%s %s", columnName, dbType))
	}

	if len(primaryKeys) > 0 {
		columns = append(columns, fmt.Sprintf("PRIMARY KEY (%s)", strings.Join(primaryKeys, ", ")))
	}

	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", tableName, strings.Join(columns, ", "))
}

func indexSQL(obj any, tableName string) []string {
	objType := derefType(obj)

	var queries []string
	for i := 0; i < objType.NumField(); i++ {
		field := objType.Field(i)
		if field.Tag.Get("index") == "" || field.Tag.Get("dbtype") == "" {
			continue
		}
		columnName := columnNameFor(field)
		queries = append(queries, fmt.Sprintf("CREATE INDEX IF NOT EXISTS idx_%s_%s ON %s(%s)",
			tableName, columnName, tableName, columnName))
	}
	return queries
}

func insert(obj Persistable) error {
	d, err := getDB()
	if err != nil {
		return err
	}

	columns, values := columnData(obj, false)
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		obj.TableName(), strings.Join(columns, ", "), placeholders)

	if _, err := d.Exec(query, values...); err != nil {
		return fmt.Errorf("failed to insert into %s: %w", obj.TableName(), err)
	}
	return nil
}

func update(obj Persistable) error {
	d, err := getDB()
	if err != nil {
		return err
	}

	columns, values := columnData(obj, true)
	setPairs := make([]string, len(columns))
	for i, c := range columns {
		setPairs[i] = c + " = ?"
	}

	whereClause, whereValues := whereForKey(obj.PrimaryKey())
	values = append(values, whereValues...)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s",
		obj.TableName(), strings.Join(setPairs, ", "), whereClause)

	if _, err := d.Exec(query, values...); err != nil {
		return fmt.Errorf("failed to update %s: %w", obj.TableName(), err)
	}
	return nil
}

// columnData extracts column names and their current values; primary key
// columns are skipped when excludePrimary is set (UPDATE never rewrites the
// key).
func columnData(obj any, excludePrimary bool) ([]string, []any) {
	objValue := derefValue(obj)
	objType := objValue.Type()

	var columns []string
	var values []any

	for i := 0; i < objType.NumField(); i++ {
		field := objType.Field(i)
		if !field.IsExported() || field.Tag.Get("dbtype") == "" {
			continue
		}
		if excludePrimary && field.Tag.Get("primary") == "true" {
			continue
		}
		columns = append(columns, columnNameFor(field))
		values = append(values, objValue.Field(i).Interface())
	}
	return columns, values
}

// selectData extracts column names and matching scan destinations.
func selectData(obj any) ([]string, []any) {
	objValue := derefValue(obj)
	objType := objValue.Type()

	var columns []string
	var destinations []any

	for i := 0; i < objType.NumField(); i++ {
		field := objType.Field(i)
		if !field.IsExported() || field.Tag.Get("dbtype") == "" {
			continue
		}
		columns = append(columns, columnNameFor(field))
		destinations = append(destinations, objValue.Field(i).Addr().Interface())
	}
	return columns, destinations
}

func whereForKey(primaryKey map[string]any) (string, []any) {
	var conditions []string
	var values []any

	for column, value := range primaryKey {
		conditions = append(conditions, column+" = ?")
		values = append(values, value)
	}
	return strings.Join(conditions, " AND "), values
}

func columnNameFor(field reflect.StructField) string {
	if name := field.Tag.Get("column"); name != "" {
		return name
	}
	return strings.ToLower(field.Name)
}

func derefType(obj any) reflect.Type {
	t := reflect.TypeOf(obj)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

func derefValue(obj any) reflect.Value {
	v := reflect.ValueOf(obj)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	return v
}
