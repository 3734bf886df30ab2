package reviews

import "time"

func seedReviews() []Review {
	return []Review{
		{ID: "seed-1", UserID: "user123", UserName: "Budi Santoso", UserAvatar: "Budi Santoso Avatar", UserProfile: "Mahasiswa", ProductName: "Mie Ayam Original", ProductID: "mie-ayam-original", Rating: 5, Comment: "Mie ayamnya juara! Kuahnya kental, ayamnya banyak, harganya juga pas di kantong mahasiswa. Pasti balik lagi!", Date: time.Date(2025, 5, 20, 10, 0, 0, 0, time.UTC), HelpfulVotes: 12},
		{ID: "seed-2", UserID: "user456", UserName: "Siti Rahayu", UserAvatar: "Siti Rahayu Avatar", UserProfile: "Karyawan Swasta", ProductName: "Ayam Geprek Keju", ProductID: "ayam-geprek-keju", Rating: 4, Comment: "Tempatnya nyaman buat nongkrong sambil nugas. Ayam gepreknya enak, sambelnya mantap. Pelayanannya juga ramah.", Photos: []string{"Contoh Foto Review 1"}, Date: time.Date(2025, 5, 18, 14, 30, 0, 0, time.UTC), HelpfulVotes: 8},
		{ID: "seed-3", UserID: "user789", UserName: "Ahmad Rizki", UserAvatar: "Ahmad Rizki Avatar", UserProfile: "Wirausaha", ProductName: "Es Rencengan Spesial", ProductID: "es-rencengan-spesial", Rating: 5, Comment: "Pesen lewat ojol, datengnya cepet, packing rapi. Rasanya konsisten enak. Es rencengannya seger banget!", Photos: []string{"Contoh Foto Review 2", "Contoh Foto Review 3"}, Date: time.Date(2025, 5, 15, 9, 15, 0, 0, time.UTC), HelpfulVotes: 15},
		{ID: "seed-4", UserID: "user101", UserName: "Dewi Lestari", UserAvatar: "Dewi Lestari Avatar", UserProfile: "Ibu Rumah Tangga", ProductName: "Nasi Goreng Kampung", ProductID: "nasi-goreng-kampung", Rating: 4, Comment: "Nasi gorengnya enak, porsinya pas. Anak-anak suka!", Date: time.Date(2025, 5, 22, 18, 0, 0, 0, time.UTC), HelpfulVotes: 5},
		{ID: "seed-5", UserID: "user112", UserName: "Rian Ardianto", UserAvatar: "Rian Ardianto Avatar", UserProfile: "Pelajar SMA", ProductName: "Bakso Goreng Pedas (5 pcs)", ProductID: "bakso-goreng-pedas", Rating: 5, Comment: "Bakso gorengnya garing, pedesnya nampol! Cocok buat cemilan sore.", Date: time.Date(2025, 5, 21, 16, 45, 0, 0, time.UTC), HelpfulVotes: 9},
	}
}
