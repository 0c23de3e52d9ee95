package store

import (
	"unicode"

	"chathub-service/model"

	"gorm.io/gorm/clause"
)

// AddReaction records a reaction. The (message, user, emoji) triple is a
// set entry: adding it twice is a no-op, distinct users or emoji on the
// same message coexist. Returns false when the reaction already existed.
func AddReaction(messageID, userID, emoji string) (bool, error) {
	if !ValidEmoji(emoji) {
		return false, ErrInvalidEmoji
	}
	result := db().Clauses(clause.OnConflict{DoNothing: true}).Create(&model.Reaction{
		MessageID: messageID,
		UserID:    userID,
		Emoji:     emoji,
	})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// RemoveReaction deletes the set entry. Removing a reaction that is not
// there is not an error, the engine stays idempotent both ways.
func RemoveReaction(messageID, userID, emoji string) error {
	if !ValidEmoji(emoji) {
		return ErrInvalidEmoji
	}
	return db().
		Where("message_id = ? AND user_id = ? AND emoji = ?", messageID, userID, emoji).
		Delete(&model.Reaction{}).Error
}

// MessageReactions lists all reactions on a message.
func MessageReactions(messageID string) ([]model.Reaction, error) {
	reactions := []model.Reaction{}
	err := db().Where("message_id = ?", messageID).Order("created_at asc").Find(&reactions).Error
	return reactions, err
}

// ValidEmoji checks that the value is a plausible emoji grapheme: short,
// and built only from symbol runes plus the joiners and modifiers emoji
// sequences use (ZWJ, variation selectors, skin tones, regional
// indicators). Plain words and ASCII are rejected.
func ValidEmoji(emoji string) bool {
	if emoji == "" {
		return false
	}
	runes := []rune(emoji)
	if len(runes) > 16 {
		return false
	}
	for _, r := range runes {
		switch {
		case r == 0x200D: // zero width joiner
		case r == 0xFE0E || r == 0xFE0F: // variation selectors
		case r >= 0x1F3FB && r <= 0x1F3FF: // skin tone modifiers
		case r >= 0x1F1E6 && r <= 0x1F1FF: // regional indicators
		case r >= 0x1F000 && r <= 0x1FAFF: // pictographs, supplemental blocks
		case r >= 0x2600 && r <= 0x27BF: // misc symbols, dingbats
		case r >= 0x2190 && r <= 0x21FF: // arrows
		case r >= 0x2B00 && r <= 0x2BFF: // misc symbols and arrows
		case r == 0x2764 || r == 0x203C || r == 0x2049:
		case unicode.IsSymbol(r) && r > 0x2000:
		default:
			return false
		}
	}
	return true
}
