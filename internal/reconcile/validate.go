package reconcile

import "fmt"

func validateSection(obj map[string]any) error {
	for _, key := range []string{"section_title", "section_overview_description"} {
		if err := requireString(obj, key); err != nil {
			return err
		}
	}

	if err := requireStringArray(obj, "subsection_titles", true); err != nil {
		return err
	}

	raw, ok := obj["subsections"]
	if !ok {
		return fmt.Errorf("missing field subsections")
	}
	subs, ok := raw.([]any)
	if !ok {
		return fmt.Errorf("subsections: expected array, got %T", raw)
	}

	for i, item := range subs {
		sub, ok := item.(map[string]any)
		if !ok {
			return fmt.Errorf("subsections[%d]: expected object, got %T", i, item)
		}
		for _, key := range []string{"subsection_title", "explanation"} {
			if err := requireString(sub, key); err != nil {
				return fmt.Errorf("subsections[%d]: %w", i, err)
			}
		}
		if err := requireStringArray(sub, "associated_image_filenames", false); err != nil {
			return fmt.Errorf("subsections[%d]: %w", i, err)
		}
	}

	return nil
}

func requireString(obj map[string]any, key string) error {
	v, ok := obj[key]
	if !ok {
		return fmt.Errorf("missing field %s", key)
	}
	if _, ok := v.(string); !ok {
		return fmt.Errorf("%s: expected string, got %T", key, v)
	}
	return nil
}

func requireStringArray(obj map[string]any, key string, required bool) error {
	v, ok := obj[key]
	if !ok || v == nil {
		if required && !ok {
			return fmt.Errorf("missing field %s", key)
		}
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		return fmt.Errorf("%s: expected array, got %T", key, v)
	}
	for i, item := range items {
		if _, ok := item.(string); !ok {
			return fmt.Errorf("%s[%d]: expected string, got %T", key, i, item)
		}
	}
	return nil
}
