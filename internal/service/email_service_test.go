package service

import (
	"errors"
	"net/textproto"
	"strings"
	"testing"

	"github.com/autoluxe/internal/config"
	"github.com/autoluxe/internal/constants"
	"github.com/autoluxe/internal/i18n"
	"github.com/autoluxe/internal/models"

	"github.com/shopspring/decimal"
)

func TestBuildOrderStatusContent(t *testing.T) {
	tests := []struct {
		name                string
		locale              string
		status              string
		customer            string
		wantSubjectContains []string
		wantBodyContains    []string
	}{
		{
			name:     "placed_en",
			locale:   i18n.LocaleEN,
			status:   constants.OrderStatusPending,
			customer: "Ada",
			wantSubjectContains: []string{
				"Order status updated",
				"Pending",
			},
			wantBodyContains: []string{
				"Hi Ada",
				"has been placed",
				"Cash on Delivery",
				"19.80",
			},
		},
		{
			name:     "shipped_zh",
			locale:   "zh-CN,zh;q=0.9",
			status:   constants.OrderStatusShipped,
			customer: "",
			wantSubjectContains: []string{
				"订单状态更新",
				"已发货",
			},
			wantBodyContains: []string{
				"顾客 您好",
				"当前状态为 已发货",
			},
		},
		{
			name:     "delivered_fallback_en",
			locale:   "fr-FR",
			status:   constants.OrderStatusDelivered,
			customer: "Lin",
			wantSubjectContains: []string{
				"Delivered",
			},
			wantBodyContains: []string{
				"has been delivered",
				"65f0000000000000000000aa",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := OrderStatusEmailInput{
				OrderID:      "65f0000000000000000000aa",
				Status:       tt.status,
				Total:        models.NewMoneyFromDecimal(decimal.NewFromFloat(19.8)),
				CustomerName: tt.customer,
			}
			subject, body := buildOrderStatusContent(input, tt.locale)
			for _, expected := range tt.wantSubjectContains {
				if !strings.Contains(subject, expected) {
					t.Fatalf("subject missing %q: %s", expected, subject)
				}
			}
			for _, expected := range tt.wantBodyContains {
				if !strings.Contains(body, expected) {
					t.Fatalf("body missing %q: %s", expected, body)
				}
			}
		})
	}
}

func TestSendOrderStatusEmailDisabled(t *testing.T) {
	svc := NewEmailService(&config.EmailConfig{Enabled: false})
	err := svc.SendOrderStatusEmail("buyer@example.com", OrderStatusEmailInput{Status: constants.OrderStatusPending}, i18n.LocaleEN)
	if !errors.Is(err, ErrEmailServiceDisabled) {
		t.Fatalf("want ErrEmailServiceDisabled got %v", err)
	}

	svc = NewEmailService(&config.EmailConfig{Enabled: true, Host: "smtp.example.com"})
	err = svc.SendOrderStatusEmail("buyer@example.com", OrderStatusEmailInput{Status: constants.OrderStatusPending}, i18n.LocaleEN)
	if !errors.Is(err, ErrEmailServiceNotConfigured) {
		t.Fatalf("want ErrEmailServiceNotConfigured got %v", err)
	}
}

func TestRecipientRejected(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "smtp_550_no_such_recipient",
			err:  errors.New("550 No such recipient here"),
			want: true,
		},
		{
			name: "smtp_user_unknown",
			err:  errors.New("SMTP 5.1.1 user unknown"),
			want: true,
		},
		{
			name: "smtp_550_mailbox_unavailable",
			err:  errors.New("550 mailbox unavailable"),
			want: true,
		},
		{
			name: "textproto_553",
			err:  &textproto.Error{Code: 553, Msg: "mailbox name not allowed"},
			want: true,
		},
		{
			name: "textproto_451_temporary",
			err:  &textproto.Error{Code: 451, Msg: "try again later"},
			want: false,
		},
		{
			name: "network_timeout",
			err:  errors.New("dial tcp timeout"),
			want: false,
		},
		{
			name: "nil_error",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := recipientRejected(tt.err); got != tt.want {
				t.Fatalf("recipientRejected() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassifySendError(t *testing.T) {
	rejected := errors.New("550 No such recipient here")
	if got := classifySendError(rejected); !errors.Is(got, ErrEmailRecipientRejected) {
		t.Fatalf("classifySendError() expected ErrEmailRecipientRejected, got %v", got)
	}

	networkErr := errors.New("dial tcp timeout")
	if got := classifySendError(networkErr); !errors.Is(got, networkErr) {
		t.Fatalf("classifySendError() should keep original error, got %v", got)
	}

	if got := classifySendError(nil); got != nil {
		t.Fatalf("classifySendError(nil) should be nil, got %v", got)
	}
}

func TestComposeTextMessageHeaders(t *testing.T) {
	msg := string(composeTextMessage(formatSender("shop@example.com", "AutoLuxe 商城"), "buyer@example.com", "订单已发货", "body"))
	if !strings.HasPrefix(msg, "From: ") {
		t.Fatalf("message should start with From header: %q", msg)
	}
	if !strings.Contains(msg, "=?UTF-8?q?") {
		t.Fatalf("non-ascii headers should be q-encoded: %q", msg)
	}
	if !strings.HasSuffix(msg, "\r\n\r\nbody") {
		t.Fatalf("body should follow a blank line: %q", msg)
	}
	if got := formatSender("shop@example.com", "  "); got != "shop@example.com" {
		t.Fatalf("blank sender name want bare address got %s", got)
	}
}
