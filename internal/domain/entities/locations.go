package entities

// cityDistricts is the static list of served cities and their districts.
var cityDistricts = map[string][]string{
	"İstanbul":  {"Kadıköy", "Beşiktaş", "Üsküdar", "Fatih", "Bakırköy", "Şişli", "Beyoğlu", "Maltepe", "Ataşehir", "Kartal", "Pendik", "Tuzla", "Sarıyer", "Beylikdüzü", "Esenyurt", "Küçükçekmece", "Bağcılar", "Bahçelievler", "Güngören", "Esenler"},
	"Ankara":    {"Çankaya", "Keçiören", "Mamak", "Yenimahalle", "Etimesgut", "Sincan", "Altındağ", "Pursaklar", "Gölbaşı", "Polatlı"},
	"İzmir":     {"Konak", "Karşıyaka", "Bornova", "Buca", "Bayraklı", "Çiğli", "Gaziemir", "Balçova", "Narlıdere", "Karabağlar"},
	"Bursa":     {"Osmangazi", "Nilüfer", "Yıldırım", "Gürsu", "Kestel", "Mudanya", "Gemlik", "İnegöl"},
	"Antalya":   {"Muratpaşa", "Kepez", "Konyaaltı", "Aksu", "Döşemealtı", "Alanya", "Manavgat", "Serik"},
	"Adana":     {"Seyhan", "Yüreğir", "Çukurova", "Sarıçam", "Ceyhan", "Kozan"},
	"Konya":     {"Selçuklu", "Meram", "Karatay", "Çumra", "Akşehir", "Ereğli"},
	"Gaziantep": {"Şahinbey", "Şehitkamil", "Oğuzeli", "Nizip", "İslahiye"},
	"Mersin":    {"Mezitli", "Yenişehir", "Toroslar", "Akdeniz", "Tarsus", "Erdemli"},
	"Kayseri":   {"Melikgazi", "Kocasinan", "Talas", "Hacılar", "İncesu"},
}

// cityOrder keeps the stable presentation order of the served cities.
var cityOrder = []string{
	"İstanbul", "Ankara", "İzmir", "Bursa", "Antalya",
	"Adana", "Konya", "Gaziantep", "Mersin", "Kayseri",
}

// Cities returns the served cities in presentation order.
func Cities() []string {
	cities := make([]string, len(cityOrder))
	copy(cities, cityOrder)
	return cities
}

// Districts returns the districts of the given city. The second return
// value is false for cities outside the service area.
func Districts(city string) ([]string, bool) {
	districts, ok := cityDistricts[city]
	if !ok {
		return nil, false
	}
	out := make([]string, len(districts))
	copy(out, districts)
	return out, true
}

// AllLocations returns the whole city to districts table.
func AllLocations() map[string][]string {
	out := make(map[string][]string, len(cityDistricts))
	for city, districts := range cityDistricts {
		d := make([]string, len(districts))
		copy(d, districts)
		out[city] = d
	}
	return out
}
