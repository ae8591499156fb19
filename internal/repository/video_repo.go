package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/joonho0410/StellaClip-sub001/internal/model"
)

type VideoRepo struct {
	pool *pgxpool.Pool
}

func NewVideoRepo(pool *pgxpool.Pool) *VideoRepo {
	return &VideoRepo{pool: pool}
}

// SearchFilter narrows a video search. Member and Cohort are canonical
// (uppercase) names or empty for no filter; IsOfficial is an additional
// predicate when non-nil, never a replacement for the member filter.
type SearchFilter struct {
	Member     string
	Cohort     string
	IsOfficial *bool
	Sort       string
	Limit      int
	Offset     int
}

const videoColumns = `
	v.id, v.external_video_id, v.title, v.description, v.channel_title, v.channel_id,
	v.published_at, v.duration_seconds, v.view_count, v.like_count, v.tags,
	v.is_official, v.source_query`

// SortClause maps a sort name onto a deterministic ORDER BY. The external
// video ID tie-break keeps pagination stable across identical timestamps.
func SortClause(sort string) string {
	switch sort {
	case "oldest":
		return "v.published_at ASC, v.external_video_id ASC"
	case "views":
		return "v.view_count DESC NULLS LAST, v.external_video_id ASC"
	case "likes":
		return "v.like_count DESC NULLS LAST, v.external_video_id ASC"
	default: // "date" and unspecified
		return "v.published_at DESC, v.external_video_id ASC"
	}
}

// Count returns the total number of stored videos.
func (r *VideoRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM videos`).Scan(&n)
	return n, err
}

// CountOfficial returns the number of videos from allow-listed channels.
func (r *VideoRepo) CountOfficial(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM videos WHERE is_official = true`).Scan(&n)
	return n, err
}

// FindMany returns a page of videos with member appearances eagerly
// attached. An offset past the end yields an empty slice, not an error.
func (r *VideoRepo) FindMany(ctx context.Context, limit, offset int, sort string) ([]model.VideoRecord, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM videos v
		ORDER BY %s
		LIMIT $1 OFFSET $2`, videoColumns, SortClause(sort))

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	videos, err := scanVideos(rows)
	if err != nil {
		return nil, err
	}
	if err := r.attachAppearances(ctx, videos); err != nil {
		return nil, err
	}
	return videos, nil
}

// Search returns a filtered page of videos and the total filtered count.
// Total is independent of limit/offset.
func (r *VideoRepo) Search(ctx context.Context, f SearchFilter) ([]model.VideoRecord, int, error) {
	where, args := buildWhere(f)

	countQuery := `SELECT COUNT(DISTINCT v.id) FROM videos v ` + joinClause(f) + where
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT DISTINCT %s
		FROM videos v %s%s
		ORDER BY %s
		LIMIT $%d OFFSET $%d`,
		videoColumns, joinClause(f), where, SortClause(f.Sort), len(args)+1, len(args)+2)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	videos, err := scanVideos(rows)
	if err != nil {
		return nil, 0, err
	}
	if err := r.attachAppearances(ctx, videos); err != nil {
		return nil, 0, err
	}
	return videos, total, nil
}

// FindByMember is member-scoped search. The caller passes a canonical
// member name; case normalization happens at the service boundary.
func (r *VideoRepo) FindByMember(ctx context.Context, member string, f SearchFilter) ([]model.VideoRecord, int, error) {
	f.Member = member
	return r.Search(ctx, f)
}

// FindAppearancesByVideoID is the reverse tag lookup for one video,
// addressed by its external (source) video ID.
func (r *VideoRepo) FindAppearancesByVideoID(ctx context.Context, externalVideoID string) ([]model.MemberAppearance, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT a.video_id, a.member_name, m.cohort
		FROM video_member_appearances a
		JOIN videos v ON v.id = a.video_id
		JOIN members m ON m.name = a.member_name
		WHERE v.external_video_id = $1
		ORDER BY m.cohort, a.member_name`, externalVideoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.MemberAppearance
	for rows.Next() {
		var a model.MemberAppearance
		if err := rows.Scan(&a.VideoID, &a.Member, &a.Cohort); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Upsert inserts or updates one video keyed by external_video_id.
// Mutable fields (title, description, channel title, tags, duration,
// statistics) take the new values; identity fields and is_official keep
// their first-write classification. Returns the stored record's id.
func (r *VideoRepo) Upsert(ctx context.Context, in model.VideoInput) (string, error) {
	var id string
	err := r.pool.QueryRow(ctx, `
		INSERT INTO videos (
			id, external_video_id, title, description, channel_title, channel_id,
			published_at, duration_seconds, view_count, like_count, tags,
			is_official, source_query, last_updated
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW())
		ON CONFLICT (external_video_id) DO UPDATE SET
			title            = EXCLUDED.title,
			description      = EXCLUDED.description,
			channel_title    = EXCLUDED.channel_title,
			tags             = EXCLUDED.tags,
			duration_seconds = EXCLUDED.duration_seconds,
			view_count       = EXCLUDED.view_count,
			like_count       = EXCLUDED.like_count,
			last_updated     = NOW()
		RETURNING id`,
		uuid.NewString(), in.ExternalVideoID, in.Title, in.Description, in.ChannelTitle,
		in.ChannelID, in.PublishedAt, in.DurationSeconds, in.ViewCount, in.LikeCount,
		in.Tags, in.IsOfficial, in.SourceQuery,
	).Scan(&id)
	return id, err
}

// TagAppearances records member appearances for a video. Existing tags are
// left untouched.
func (r *VideoRepo) TagAppearances(ctx context.Context, videoID string, members []string) (int, error) {
	tagged := 0
	for _, member := range members {
		tag, err := r.pool.Exec(ctx, `
			INSERT INTO video_member_appearances (video_id, member_name)
			VALUES ($1, $2)
			ON CONFLICT (video_id, member_name) DO NOTHING`, videoID, member)
		if err != nil {
			return tagged, err
		}
		tagged += int(tag.RowsAffected())
	}
	return tagged, nil
}

// ReclassifyOfficial is the explicit migration operation that recomputes
// is_official for every stored video against a new allow-list. Normal
// ingestion never does this.
func (r *VideoRepo) ReclassifyOfficial(ctx context.Context, officialIDs []string) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE videos
		SET is_official = (channel_id = ANY($1)), last_updated = NOW()
		WHERE is_official <> (channel_id = ANY($1))`, officialIDs)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func joinClause(f SearchFilter) string {
	if f.Member != "" || f.Cohort != "" {
		return `
		JOIN video_member_appearances a ON a.video_id = v.id
		JOIN members m ON m.name = a.member_name `
	}
	return ""
}

func buildWhere(f SearchFilter) (string, []any) {
	var conds []string
	var args []any

	if f.Member != "" {
		args = append(args, f.Member)
		conds = append(conds, fmt.Sprintf("a.member_name = $%d", len(args)))
	}
	if f.Cohort != "" {
		args = append(args, f.Cohort)
		conds = append(conds, fmt.Sprintf("m.cohort = $%d", len(args)))
	}
	if f.IsOfficial != nil {
		args = append(args, *f.IsOfficial)
		conds = append(conds, fmt.Sprintf("v.is_official = $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", args
	}
	where := " WHERE " + conds[0]
	for _, c := range conds[1:] {
		where += " AND " + c
	}
	return where, args
}

func scanVideos(rows pgx.Rows) ([]model.VideoRecord, error) {
	defer rows.Close()

	var videos []model.VideoRecord
	for rows.Next() {
		var v model.VideoRecord
		err := rows.Scan(
			&v.ID, &v.ExternalVideoID, &v.Title, &v.Description, &v.ChannelTitle,
			&v.ChannelID, &v.PublishedAt, &v.DurationSeconds, &v.ViewCount,
			&v.LikeCount, &v.Tags, &v.IsOfficial, &v.SourceQuery,
		)
		if err != nil {
			return nil, err
		}
		videos = append(videos, v)
	}
	return videos, rows.Err()
}

// attachAppearances eagerly loads member tags for a page of videos.
func (r *VideoRepo) attachAppearances(ctx context.Context, videos []model.VideoRecord) error {
	if len(videos) == 0 {
		return nil
	}

	ids := make([]string, len(videos))
	index := make(map[string]int, len(videos))
	for i, v := range videos {
		ids[i] = v.ID
		index[v.ID] = i
		videos[i].Members = []model.MemberAppearance{}
	}

	rows, err := r.pool.Query(ctx, `
		SELECT a.video_id, a.member_name, m.cohort
		FROM video_member_appearances a
		JOIN members m ON m.name = a.member_name
		WHERE a.video_id = ANY($1)
		ORDER BY m.cohort, a.member_name`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var a model.MemberAppearance
		if err := rows.Scan(&a.VideoID, &a.Member, &a.Cohort); err != nil {
			return err
		}
		if i, ok := index[a.VideoID]; ok {
			videos[i].Members = append(videos[i].Members, a)
		}
	}
	return rows.Err()
}
