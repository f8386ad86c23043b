package notify

import (
	"context"
	"fmt"

	"si-prima/internal/logger"

	"gopkg.in/gomail.v2"
)

type Notifier interface {
	PegawaiTerdaftar(ctx context.Context, nama, email string)
}

// Sender adalah bagian dari gomail.Dialer yang dipakai Mailer
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	Admin    string
}

// Mailer mengirim email pemberitahuan ke admin. Kegagalan hanya dicatat di log.
type Mailer struct {
	sender Sender
	from   string
	admin  string
	async  bool
}

// NewNotifier mengembalikan Nop jika host atau alamat admin kosong.
func NewNotifier(cfg Config) Notifier {
	if cfg.Host == "" || cfg.Admin == "" {
		return Nop{}
	}
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	return &Mailer{sender: d, from: cfg.From, admin: cfg.Admin, async: true}
}

func NewMailer(sender Sender, from, admin string) *Mailer {
	return &Mailer{sender: sender, from: from, admin: admin}
}

func (m *Mailer) PegawaiTerdaftar(ctx context.Context, nama, email string) {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.admin)
	msg.SetHeader("Subject", "Pendaftaran pegawai baru: "+nama)
	msg.SetBody("text/plain", fmt.Sprintf(
		"Pegawai baru mendaftar di SI PRIMA.\n\nNama  : %s\nEmail : %s\n\nSilakan lengkapi data kepegawaiannya di halaman admin.", nama, email))

	send := func() {
		if err := m.sender.DialAndSend(msg); err != nil {
			logger.WarnLog(ctx, "gagal mengirim email pendaftaran %s: %v", email, err)
			return
		}
		logger.InfoLog(ctx, "email pendaftaran %s terkirim ke admin", email)
	}

	if m.async {
		go send()
		return
	}
	send()
}

type Nop struct{}

func (Nop) PegawaiTerdaftar(context.Context, string, string) {}
