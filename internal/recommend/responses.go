// CineMood - Conversational Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package recommend

import "strings"

// FallbackMessage is returned when no response keyword matches.
const FallbackMessage = "Anlattıklarına uygun bu harika filmleri buldum senin için:"

// responses are checked in order; the first key contained in the text wins.
var responses = []struct {
	key string
	msg string
}{
	{"deprem", "Çok geçmiş olsun, umarım güvendesindir. Yaşadığın bu zorlu süreci anlamlandırmana yardımcı olabilecek, dayanışma ve umut dolu filmler seçtim:"},
	{"gelecek kaygısı", "Geleceğin belirsizliği bazen ağır gelebilir. İşte bu kaygılarla yüzleşen ve kendi yolunu çizen karakterlerin hikayeleri:"},
	{"varoluş", "Hayatın anlamını ve kendi yerimizi sorguladığımız o derin anlar... İşte varoluşsal sancılara ayna tutan filmler:"},
	{"boşluk", "İçindeki boşluğu anlamlandırmaya çalışan karakterlerin yolculukları sana iyi gelebilir. İşte o filmler:"},
	{"anlamsız", "Bazen her şey anlamsız gelebilir. Bu duyguyu ve yeniden anlam bulma çabasını işleyen filmler:"},
	{"afet", "Çok geçmiş olsun. Bazen felaket filmleri izlemek, insanın içindeki hayatta kalma gücünü hatırlatır. İşte senin için seçtiklerim:"},
	{"enkaz", "Çok geçmiş olsun. Umut her zaman vardır. İşte hayata tutunma hikayeleri:"},
	{"aldat", "Kalp kırıklığı zor bir süreç, biliyorum. Ama yalnız değilsin. İşte ihanet, yüzleşme ve yeniden ayağa kalkma üzerine filmler:"},
	{"ihanet", "Güvenin kırılması ağırdır. Bu duygularla başa çıkmana yardımcı olabilecek hikayeler:"},
	{"ayrıl", "Ayrılıklar yeni başlangıçların habercisidir. Kendini bulma yolculuğunda sana eşlik edecek filmler:"},
	{"terk", "Bazen gitmek gerekir, bazen de kalan olmak zordur. İşte bu duyguları işleyen filmler:"},
	{"boşan", "Hayat bazen planladığımız gibi gitmeyebilir. Bu süreçte sana güç verecek ve yalnız olmadığını hissettirecek hikayeler:"},
	{"kovul", "Kariyer yolculuğunda bazen duraklamalar olur. Bu durumu bir fırsata çeviren karakterlerin hikayeleri sana ilham verebilir:"},
	{"işsiz", "Her son yeni bir başlangıçtır. Umudunu kaybetme, işte mücadele ruhunu tazeleyecek filmler:"},
	{"istifa", "Cesur bir karar almışsın! Yeni bir yola çıkarken motivasyonunu artıracak filmler burada:"},
	{"yalnız", "Yalnızlık bazen en iyi öğretmendir. Kendi kendine yetebilmenin ve içsel yolculuğun güzelliğini anlatan filmler:"},
	{"mutsuz", "Bazen sadece durup hissetmek gerekir. Ruhuna dokunacak ve belki de sana umut olacak filmler:"},
	{"kork", "Korkularının üzerine gitmek cesaret ister. İşte gerilimi yüksek ama sonunda rahatlayacağın filmler:"},
	{"sınav", "Sınav stresi geçicidir, ama kazandığın tecrübeler kalıcı. Biraz mola verip kafanı dağıtman için seçtiklerim:"},
	{"aşk", "Aşkın her hali güzeldir. Kalbini ısıtacak romantik hikayeler senin için:"},
	{"sevgi", "Sevgi dünyayı kurtarır derler. İşte içini ısıtacak sevgi dolu filmler:"},
	{"aile", "Aile bağları karmaşıktır ama köklerimizdir. Aile ilişkilerine dair derinlikli filmler:"},
	{"yeni bir şehre", "Taşınmak büyük bir cesaret ister! Yeni sokaklar, yeni yüzler... Bu adaptasyon sürecinde sana iyi gelecek, yalnız olmadığını hissettirecek filmler seçtim:"},
	{"taşın", "Yeni bir yer, yeni bir hayat... Bu değişim sürecinde sana ilham verecek yolculuk hikayeleri:"},
	{"yeni şehir", "Şehirler değişir, hikayeler başlar. Adaptasyon sürecini anlatan filmler:"},
	{"motivasyon", "Bazen ihtiyacımız olan tek şey küçük bir kıvılcımdır. İçindeki ateşi yakacak filmler:"},
	{"başarı", "Zirveye giden yol dikenlidir ama manzarası güzeldir. İşte ilham veren başarı hikayeleri:"},
	{"yolculuk", "Yollar sadece mesafeleri değil, insanı kendine de götürür. İşte harika yol hikayeleri:"},
	{"dost", "Gerçek dostluklar hayatın en büyük hazinesidir. İşte sıkı dostlukları anlatan filmler:"},
	{"gizem", "Merak kediyi öldürür derler ama bu filmleri izlemeden duramayacaksın. İşte zihnini zorlayacak gizemler:"},
}

// ComposeResponse picks the empathetic preamble for a user message.
func ComposeResponse(text string) string {
	t := Lower(text)
	for _, r := range responses {
		if strings.Contains(t, r.key) {
			return r.msg
		}
	}
	return FallbackMessage
}
