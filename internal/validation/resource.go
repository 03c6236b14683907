package validation

import (
	"fmt"
	"regexp"
)

// ResourceNamePattern определяет допустимый формат имени типа ресурса
// Только строчные латинские буквы, цифры, дефис и нижнее подчеркивание,
// первый символ - буква. Длина: 2-64 символа.
var ResourceNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_-]{1,63}$`)

const (
	// MinResourceNameLen минимальная длина имени типа ресурса
	MinResourceNameLen = 2
	// MaxResourceNameLen максимальная длина имени типа ресурса
	MaxResourceNameLen = 64
)

// ValidateResourceName проверяет, что имя типа ресурса пригодно для
// использования в пути endpoint'а и в ключах хранилища.
// Имена фиксируются при загрузке конфигурации, поэтому ошибка здесь -
// ошибка конфигурации, а не рантайма.
func ValidateResourceName(name string) error {
	if name == "" {
		return fmt.Errorf("resource name cannot be empty")
	}

	if len(name) < MinResourceNameLen {
		return fmt.Errorf("resource name must be at least %d characters long", MinResourceNameLen)
	}

	if len(name) > MaxResourceNameLen {
		return fmt.Errorf("resource name must not exceed %d characters", MaxResourceNameLen)
	}

	if !ResourceNamePattern.MatchString(name) {
		return fmt.Errorf("resource name can only contain lowercase letters, numbers, hyphens and underscores, and must start with a letter")
	}

	return nil
}
