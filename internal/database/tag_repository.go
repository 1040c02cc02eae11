package database

import (
	"context"

	"sloboda/internal/models"
	"sloboda/internal/utils"
)

// PopularTags returns the most-used tags across non-deleted threads.
func (p *PostgresDB) PopularTags(ctx context.Context, limit int) ([]*models.TagCount, error) {
	query := `
		SELECT tt.tag, COUNT(*) AS count
		FROM thread_tags tt
		JOIN threads t ON tt.thread_id = t.id AND t.is_deleted = FALSE
		GROUP BY tt.tag
		ORDER BY count DESC, tt.tag ASC
		LIMIT $1
	`
	tags := []*models.TagCount{}
	if err := p.DB.SelectContext(ctx, &tags, query, limit); err != nil {
		return nil, utils.NewAppError(utils.ErrDatabase, "failed to query popular tags", err)
	}
	return tags, nil
}

// SearchTags returns tags matching a case-insensitive prefix, most used
// first.
func (p *PostgresDB) SearchTags(ctx context.Context, query string, limit int) ([]*models.TagCount, error) {
	sqlQuery := `
		SELECT tt.tag, COUNT(*) AS count
		FROM thread_tags tt
		WHERE tt.tag ILIKE $1 || '%'
		GROUP BY tt.tag
		ORDER BY count DESC, tt.tag ASC
		LIMIT $2
	`
	tags := []*models.TagCount{}
	if err := p.DB.SelectContext(ctx, &tags, sqlQuery, query, limit); err != nil {
		return nil, utils.NewAppError(utils.ErrDatabase, "failed to search tags", err)
	}
	return tags, nil
}

// RelatedTags returns tags that co-occur on threads carrying the given
// tag, ranked by co-occurrence count.
func (p *PostgresDB) RelatedTags(ctx context.Context, tag string, limit int) ([]*models.TagCount, error) {
	query := `
		SELECT other.tag, COUNT(*) AS count
		FROM thread_tags base
		JOIN thread_tags other ON other.thread_id = base.thread_id AND other.tag <> base.tag
		WHERE base.tag = $1
		GROUP BY other.tag
		ORDER BY count DESC, other.tag ASC
		LIMIT $2
	`
	tags := []*models.TagCount{}
	if err := p.DB.SelectContext(ctx, &tags, query, tag, limit); err != nil {
		return nil, utils.NewAppError(utils.ErrDatabase, "failed to query related tags", err)
	}
	return tags, nil
}

// TagCategories returns tag categories with total usage counts. Tags with
// no category fall into the empty-name bucket.
func (p *PostgresDB) TagCategories(ctx context.Context) ([]*models.TagCategory, error) {
	query := `
		SELECT tt.tag_category AS category, COUNT(*) AS count
		FROM thread_tags tt
		GROUP BY tt.tag_category
		ORDER BY count DESC, category ASC
	`
	cats := []*models.TagCategory{}
	if err := p.DB.SelectContext(ctx, &cats, query); err != nil {
		return nil, utils.NewAppError(utils.ErrDatabase, "failed to query tag categories", err)
	}
	return cats, nil
}
