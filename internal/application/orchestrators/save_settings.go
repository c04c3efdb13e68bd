package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"flotenn/internal/domain/audit"
	"flotenn/internal/domain/setting"
)

// SettingStoreForSave defines the store interface needed by SaveSettings.
type SettingStoreForSave interface {
	Upsert(ctx context.Context, key, value string) error
}

// SaveSettingsDeps holds dependencies for SaveSettings.
type SaveSettingsDeps struct {
	SettingStore SettingStoreForSave
	Activity     RecordActivityDeps
}

// ExecuteSaveSettings upserts every submitted key.
// PRE: Every key is one of setting.Keys
// POST: Each key stored; nothing is written when any key is unknown
func ExecuteSaveSettings(ctx context.Context, values map[string]string, actorID string, deps SaveSettingsDeps) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		if !setting.IsKnown(k) {
			return fmt.Errorf("%w: %s", setting.ErrUnknownKey, k)
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if err := deps.SettingStore.Upsert(ctx, k, strings.TrimSpace(values[k])); err != nil {
			return fmt.Errorf("save setting %s: %w", k, err)
		}
	}
	slog.Info("settings_saved", "keys", len(keys))
	logActivity(ctx, RecordActivityInput{
		UserID: actorID, Action: audit.ActionUpdate, EntityType: "settings",
		Details: strings.Join(keys, ", "),
	}, deps.Activity)
	return nil
}
