package utils

// RemoveRepeatedElement keeps the first occurrence of each non-empty string,
// preserving order.
func RemoveRepeatedElement(arr []string) []string {
	newArr := make([]string, 0, len(arr))
	seen := make(map[string]struct{}, len(arr))
	for _, v := range arr {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		newArr = append(newArr, v)
	}
	return newArr
}
