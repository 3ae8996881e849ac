package availability

// pluralRu picks the Russian noun form for a count. The short form is used
// for counts ending in 1 (except the teens: 11 is plural), everything else
// gets the plural form. Two forms are enough for the words we inflect here.
func pluralRu(n int, one, many string) string {
	if n%10 == 1 && n%100 != 11 {
		return one
	}
	return many
}
